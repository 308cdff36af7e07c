package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/dquiroga/cargogen/internal/table"
)

// fallbackCharset decodes files that are not valid UTF-8. Spreadsheet
// tools on Windows commonly export CSV in the system code page.
const fallbackCharset = "windows-1252"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVLoader reads delimited text files. The field separator is sniffed
// from the first line: comma, semicolon or tab, whichever occurs most.
type CSVLoader struct{}

// NewCSVLoader creates a new delimited text loader
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads the whole file into a table
func (l *CSVLoader) Load(r io.Reader, opts Options) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	data, err = decodeCharset(data, opts.Charset)
	if err != nil {
		return nil, &FormatError{Format: FormatCSV, Err: err}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffSeparator(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{Format: FormatCSV, Err: err}
	}

	return buildTable(rows, opts)
}

// decodeCharset converts the raw bytes to UTF-8. With no charset named,
// valid UTF-8 passes through and anything else is decoded as
// windows-1252.
func decodeCharset(data []byte, charset string) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	name := charset
	if name == "" {
		if utf8.Valid(data) {
			return data, nil
		}
		name = fallbackCharset
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return decoded, nil
}

// sniffSeparator picks the field separator by counting candidates in
// the first line. Ties go to the comma.
func sniffSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	sep := ','
	best := bytes.Count(line, []byte{','})
	for _, candidate := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{candidate}); n > best {
			sep, best = rune(candidate), n
		}
	}
	return sep
}
