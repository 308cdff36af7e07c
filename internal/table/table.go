// Package table holds the in-memory form of a loaded spreadsheet: ordered
// column names, rows of classified cells, and worksheet metadata.
package table

import (
	"strconv"
	"strings"
)

// CellKind discriminates the variants a raw cell value can take
type CellKind int

const (
	// Empty marks a blank cell
	Empty CellKind = iota
	// String marks a textual cell
	String
	// Number marks a cell whose text parses as a float
	Number
)

// String returns the lowercase name of the kind
func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case String:
		return "string"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Cell is one spreadsheet value as loaded. Text always carries the raw
// trimmed content; Num is populated only when Kind is Number. Schema
// resolution happens at validation time, not here.
type Cell struct {
	Kind CellKind // variant tag
	Text string   // raw trimmed text as it appeared in the file
	Num  float64  // parsed value when Kind == Number
}

// Classify turns a raw cell string into a Cell. Blank (after trimming)
// becomes Empty; text that parses as a float becomes Number; everything
// else stays String.
func Classify(raw string) Cell {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Cell{Kind: Empty}
	}
	if num, err := strconv.ParseFloat(text, 64); err == nil {
		return Cell{Kind: Number, Text: text, Num: num}
	}
	return Cell{Kind: String, Text: text}
}

// IsEmpty reports whether the cell holds no value
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// Value returns the display form of the cell: the raw text for string and
// number cells, "" for empty ones.
func (c Cell) Value() string {
	return c.Text
}

// Row is one parsed spreadsheet record. Cells are parallel to the owning
// table's Columns slice; Number is the 1-based data row index (1 = first
// row below the header).
type Row struct {
	Number int
	Cells  []Cell
}

// CellAt returns the cell at column index i, or an empty cell when the row
// is shorter than the header.
func (r Row) CellAt(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{Kind: Empty}
	}
	return r.Cells[i]
}

// Table is an immutable-after-load spreadsheet: column names in file order,
// data rows, and the metadata cells captured while loading.
type Table struct {
	Columns []string
	Rows    []Row
	Meta    map[string]string // metadata cell label -> value
	Source  string            // file the table came from
	Sheet   string            // worksheet name, empty for CSV input
}

// New creates an empty table with the given header columns
func New(columns []string) *Table {
	return &Table{
		Columns: columns,
		Meta:    make(map[string]string),
	}
}

// ColumnIndex finds the index of a column by exact name
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// AppendRow adds a data row, assigning the next row number
func (t *Table) AppendRow(cells []Cell) {
	t.Rows = append(t.Rows, Row{
		Number: len(t.Rows) + 1,
		Cells:  cells,
	})
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ValueMap flattens a row into a column name -> display value mapping.
// Missing trailing cells map to "".
func (t *Table) ValueMap(r Row) map[string]string {
	values := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		values[col] = r.CellAt(i).Value()
	}
	return values
}

// IsRowEmpty reports whether every cell in the row is empty. Loaders use
// this to drop trailing blank lines that spreadsheets commonly carry.
func IsRowEmpty(cells []Cell) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
