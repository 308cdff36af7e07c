// Package validate checks table rows against column schemas.
// It accumulates every failure instead of stopping at the first,
// so a whole worksheet can be reported in one pass.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dquiroga/cargogen/internal/schema"
	"github.com/dquiroga/cargogen/internal/table"
)

// RowError represents a single validation failure with context
type RowError struct {
	Row     int // 1-based data row number, 0 for header-level failures
	Column  string
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Column, e.Message)
}

// Result contains the failures found in one data row
type Result struct {
	Row    int
	Errors []RowError
}

// Valid returns true if the row passed every check
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns the row's failures as "column: message" strings
func (r Result) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// Report aggregates all validation errors from a table
type Report struct {
	Source   string
	Sheet    string
	Schema   string
	RowCount int

	// Header holds missing required columns (Row is 0)
	Header []RowError

	// Rows holds results for data rows that failed, in row order
	Rows []Result

	// Unknown lists header columns the schema does not define.
	// Unknown columns are warnings, never errors.
	Unknown []string
}

// Valid returns true if the header and every row passed
func (r *Report) Valid() bool {
	return len(r.Header) == 0 && len(r.Rows) == 0
}

// ErrorCount returns the total number of failures
func (r *Report) ErrorCount() int {
	count := len(r.Header)
	for _, res := range r.Rows {
		count += len(res.Errors)
	}
	return count
}

// Messages returns every failure as a printable line, header errors first
func (r *Report) Messages() []string {
	var msgs []string
	for _, err := range r.Header {
		msgs = append(msgs, err.Error())
	}
	for _, res := range r.Rows {
		for _, err := range res.Errors {
			msgs = append(msgs, fmt.Sprintf("row %d: %s", res.Row, err.Error()))
		}
	}
	return msgs
}

// Error returns aggregated error message
func (r *Report) Error() string {
	if r.Valid() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", r.ErrorCount()))
	for _, msg := range r.Messages() {
		sb.WriteString(fmt.Sprintf("  - %s\n", msg))
	}
	return sb.String()
}

// Table validates every row of a table against the schema.
// Required columns missing from the header are reported once, at the
// header level; rows are not re-checked against absent columns.
func Table(s *schema.Schema, tbl *table.Table) *Report {
	report := &Report{
		Source:   tbl.Source,
		Sheet:    tbl.Sheet,
		Schema:   s.Name,
		RowCount: len(tbl.Rows),
	}

	for _, col := range s.Columns {
		if _, ok := tbl.ColumnIndex(col.Name); !ok && col.Required {
			report.Header = append(report.Header, RowError{
				Column:  col.Name,
				Message: "required column missing",
			})
		}
	}

	for _, name := range tbl.Columns {
		if _, ok := s.Column(name); !ok {
			report.Unknown = append(report.Unknown, name)
		}
	}

	for _, row := range tbl.Rows {
		result := Row(s, tbl, row)
		if !result.Valid() {
			report.Rows = append(report.Rows, result)
		}
	}

	return report
}

// Row validates a single row against the schema. Columns absent from the
// table header are skipped here and reported by Table instead.
func Row(s *schema.Schema, tbl *table.Table, row table.Row) Result {
	result := Result{Row: row.Number}

	for _, col := range s.Columns {
		idx, ok := tbl.ColumnIndex(col.Name)
		if !ok {
			continue
		}
		checkCell(col, row.CellAt(idx), &result)
	}

	return result
}

// checkCell applies one column's constraints to one cell
func checkCell(col schema.Column, cell table.Cell, result *Result) {
	if cell.IsEmpty() {
		switch {
		case col.Required:
			result.Errors = append(result.Errors, RowError{
				Row:     result.Row,
				Column:  col.Name,
				Message: "required value is empty",
			})
		case col.NonEmpty:
			result.Errors = append(result.Errors, RowError{
				Row:     result.Row,
				Column:  col.Name,
				Message: "value must not be empty",
			})
		}
		return
	}

	if col.Type != schema.TypeNumber {
		return
	}

	if cell.Kind != table.Number {
		result.Errors = append(result.Errors, RowError{
			Row:     result.Row,
			Column:  col.Name,
			Message: fmt.Sprintf("expected number, got '%s'", cell.Text),
		})
		return
	}

	if col.Min != nil && cell.Num < *col.Min {
		result.Errors = append(result.Errors, RowError{
			Row:     result.Row,
			Column:  col.Name,
			Message: fmt.Sprintf("number %s below minimum %s", formatNum(cell.Num), formatNum(*col.Min)),
		})
	}
	if col.Max != nil && cell.Num > *col.Max {
		result.Errors = append(result.Errors, RowError{
			Row:     result.Row,
			Column:  col.Name,
			Message: fmt.Sprintf("number %s above maximum %s", formatNum(cell.Num), formatNum(*col.Max)),
		})
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
