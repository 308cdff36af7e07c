// Package loader reads tabular data from spreadsheet files into tables.
// It supports Excel workbooks and delimited text files, detecting the
// format from the file extension.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dquiroga/cargogen/internal/table"
)

// Format represents the format of a data file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatXLSX represents an Excel (.xlsx) workbook
	FormatXLSX
	// FormatCSV represents a delimited text (.csv) file
	FormatCSV
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// Options control how a file is read
type Options struct {
	// Sheet selects a worksheet by name; empty selects the first sheet.
	// Ignored for CSV files.
	Sheet string

	// HeaderRow is the 1-based row holding the column names; 0 means row 1
	HeaderRow int

	// MaxRows caps the number of data rows read; 0 means no cap.
	// Blank rows are dropped before the cap applies.
	MaxRows int

	// Charset names the text encoding of a CSV file (any name the WHATWG
	// encoding index knows, e.g. "windows-1252"). Empty means detect:
	// UTF-8 when the bytes are valid UTF-8, windows-1252 otherwise.
	// Ignored for Excel files.
	Charset string

	// Metadata maps placeholder names to cell references read from the
	// worksheet outside the table, e.g. "tienda" -> "C4". Ignored for
	// CSV files.
	Metadata map[string]string
}

// Loader is the interface that all file loaders must implement
type Loader interface {
	// Load reads from an io.Reader and returns the parsed table
	Load(r io.Reader, opts Options) (*table.Table, error)
}

// FormatError reports a file that could not be read as its format
type FormatError struct {
	Path   string
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("not a valid %s file", e.Format)
	if e.Format == FormatUnknown {
		msg = "unsupported file format (supported: .xlsx, .csv)"
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// DetectFormat detects the file format based on extension
// Supported extensions:
//   - .xlsx -> FormatXLSX
//   - .csv -> FormatCSV
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// NewLoader creates a loader for the specified format
// Returns an error if the format is unknown or unsupported
func NewLoader(format Format) (Loader, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXLoader(), nil
	case FormatCSV:
		return NewCSVLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// LoadFile is a convenience function that detects the format from the
// file extension, opens the file and loads it. The table's Source is
// set to the absolute path.
func LoadFile(path string, opts Options) (*table.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("access data file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("data file %s is a directory", path)
	}

	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, &FormatError{Path: path, Format: FormatUnknown}
	}

	l, err := NewLoader(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	tbl, err := l.Load(file, opts)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	tbl.Source = absPath

	return tbl, nil
}

// SheetNames lists the worksheets of an Excel workbook in workbook order
func SheetNames(path string) ([]string, error) {
	if DetectFormat(path) != FormatXLSX {
		return nil, fmt.Errorf("%s: sheet listing needs an Excel workbook", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	names, err := NewXLSXLoader().Sheets(file)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return nil, err
	}
	return names, nil
}

// buildTable turns raw rows into a table: the header row names the
// columns, every later row becomes a data row. Rows shorter than the
// header are padded with empty cells, surplus cells are dropped, and
// fully blank rows are skipped.
func buildTable(rows [][]string, opts Options) (*table.Table, error) {
	headerRow := opts.HeaderRow
	if headerRow < 1 {
		headerRow = 1
	}
	if headerRow > len(rows) {
		return nil, fmt.Errorf("header row %d is beyond the last row (%d)", headerRow, len(rows))
	}

	header := rows[headerRow-1]
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("header row %d is empty", headerRow)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	tbl := table.New(columns)
	for _, raw := range rows[headerRow:] {
		cells := make([]table.Cell, len(columns))
		for i := range columns {
			if i < len(raw) {
				cells[i] = table.Classify(raw[i])
			} else {
				cells[i] = table.Classify("")
			}
		}
		if table.IsRowEmpty(cells) {
			continue
		}
		tbl.AppendRow(cells)
		if opts.MaxRows > 0 && tbl.RowCount() >= opts.MaxRows {
			break
		}
	}

	return tbl, nil
}
