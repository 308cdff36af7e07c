// Package export writes a loaded table back out as a normalized
// single-sheet workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/dquiroga/cargogen/internal/table"
)

// DefaultSheetName is used when the table does not remember the
// worksheet it was loaded from, as with CSV input.
const DefaultSheetName = "Datos"

// WriteXLSX writes the table as one worksheet: a bold header row
// followed by one row per record, number cells kept numeric. Parent
// folders are created and an existing file at path is replaced.
func WriteXLSX(tbl *table.Table, path string) error {
	if len(tbl.Columns) == 0 {
		return fmt.Errorf("table has no columns to export")
	}

	sheet := tbl.Sheet
	if sheet == "" {
		sheet = DefaultSheetName
	}

	xl := excelize.NewFile()
	defer xl.Close()
	if err := xl.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name worksheet %q: %w", sheet, err)
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, name := range tbl.Columns {
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header column %d: %w", i+1, err)
		}
		if err = xl.SetCellStr(sheet, axis, name); err != nil {
			return fmt.Errorf("write header %q: %w", name, err)
		}
		if err = xl.SetCellStyle(sheet, axis, axis, bold); err != nil {
			return fmt.Errorf("style header %q: %w", name, err)
		}
	}

	for _, row := range tbl.Rows {
		for i := range tbl.Columns {
			cell := row.CellAt(i)
			if cell.IsEmpty() {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(i+1, row.Number+1)
			if err != nil {
				return fmt.Errorf("cell %d of row %d: %w", i+1, row.Number, err)
			}
			if cell.Kind == table.Number {
				err = xl.SetCellFloat(sheet, axis, cell.Num, -1, 64)
			} else {
				err = xl.SetCellStr(sheet, axis, cell.Text)
			}
			if err != nil {
				return fmt.Errorf("write cell %s: %w", axis, err)
			}
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
	}
	if err := xl.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
