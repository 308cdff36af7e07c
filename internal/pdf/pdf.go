// Package pdf renders a loaded table as a one-table summary PDF.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dquiroga/cargogen/internal/table"
)

// alternateRowColor shades every second data row
var alternateRowColor = props.Color{Red: 230, Green: 230, Blue: 230}

// WriteTable renders the table as an A4 summary PDF: an optional bold
// title, a bold header row, alternately shaded data rows, and page
// numbers. Parent folders are created and an existing file at path is
// replaced.
func WriteTable(tbl *table.Table, title, path string) error {
	if len(tbl.Columns) == 0 {
		return fmt.Errorf("table has no columns to render")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(len(tbl.Columns)).
		WithPageNumber().
		Build()
	m := maroto.New(cfg)

	if title != "" {
		m.AddRow(12, text.NewCol(len(tbl.Columns), title, props.Text{
			Style: fontstyle.Bold,
			Size:  14,
			Align: align.Center,
		}))
	}

	header := make([]core.Col, len(tbl.Columns))
	for i, name := range tbl.Columns {
		header[i] = text.NewCol(1, name, props.Text{Style: fontstyle.Bold, Size: 9})
	}
	m.AddRow(8, header...)

	for i, record := range tbl.Rows {
		cols := make([]core.Col, len(tbl.Columns))
		for j := range tbl.Columns {
			cols[j] = text.NewCol(1, record.CellAt(j).Value(), props.Text{Size: 8})
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: &alternateRowColor})
		}
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("save pdf %s: %w", path, err)
	}
	return nil
}
