package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dquiroga/cargogen/internal/table"
)

// XLSXLoader reads Excel workbooks
type XLSXLoader struct{}

// NewXLSXLoader creates a new Excel workbook loader
func NewXLSXLoader() *XLSXLoader {
	return &XLSXLoader{}
}

// Load reads one worksheet into a table. With no sheet named in the
// options, the first sheet of the workbook is used.
func (l *XLSXLoader) Load(r io.Reader, opts Options) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FormatError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	tbl, err := buildTable(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	tbl.Sheet = sheet

	for name, ref := range opts.Metadata {
		value, err := f.GetCellValue(sheet, ref)
		if err != nil {
			return nil, fmt.Errorf("read metadata cell %s on sheet %q: %w", ref, sheet, err)
		}
		tbl.Meta[name] = strings.TrimSpace(value)
	}

	return tbl, nil
}

// Sheets lists the worksheet names of a workbook in workbook order
func (l *XLSXLoader) Sheets(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FormatError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// resolveSheet validates a requested sheet name, or picks the first
// sheet when none was requested
func resolveSheet(f *excelize.File, requested string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", &FormatError{Format: FormatXLSX, Err: fmt.Errorf("workbook has no sheets")}
	}

	if requested == "" {
		return sheets[0], nil
	}

	for _, name := range sheets {
		if name == requested {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found in workbook (available: %s)", requested, strings.Join(sheets, ", "))
}
