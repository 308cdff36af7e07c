package validate

import (
	"strings"
	"testing"

	"github.com/dquiroga/cargogen/internal/schema"
	"github.com/dquiroga/cargogen/internal/table"
)

func makeTable(columns []string, rows ...[]string) *table.Table {
	tbl := table.New(columns)
	for _, raw := range rows {
		cells := make([]table.Cell, len(raw))
		for i, v := range raw {
			cells[i] = table.Classify(v)
		}
		tbl.AppendRow(cells)
	}
	return tbl
}

func TestTableAcceptsValidRows(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"camisa blanca", "10"},
		[]string{"polo delivery", "3.5"},
	)

	report := Table(schema.Stock(), tbl)
	if !report.Valid() {
		t.Fatalf("Expected valid report, got errors: %v", report.Messages())
	}
	if report.RowCount != 2 {
		t.Errorf("Expected RowCount 2, got %d", report.RowCount)
	}
	if report.ErrorCount() != 0 {
		t.Errorf("Expected 0 errors, got %d", report.ErrorCount())
	}
}

func TestNonNumericQuantityRejected(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"camisa blanca", "abc"},
	)

	report := Table(schema.Stock(), tbl)
	if report.Valid() {
		t.Fatal("Expected invalid report")
	}
	if len(report.Rows) != 1 {
		t.Fatalf("Expected 1 failed row, got %d", len(report.Rows))
	}

	errs := report.Rows[0].Messages()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	want := "quantity: expected number, got 'abc'"
	if errs[0] != want {
		t.Errorf("Expected %q, got %q", want, errs[0])
	}
}

func TestMissingRequiredColumn(t *testing.T) {
	tbl := makeTable(
		[]string{"name"},
		[]string{"camisa blanca"},
	)

	report := Table(schema.Stock(), tbl)
	if report.Valid() {
		t.Fatal("Expected invalid report")
	}
	if len(report.Header) != 1 {
		t.Fatalf("Expected 1 header error, got %v", report.Header)
	}

	got := report.Header[0].Error()
	want := "quantity: required column missing"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Rows must not re-report the absent column
	if len(report.Rows) != 0 {
		t.Errorf("Expected no row errors, got %v", report.Rows)
	}
}

func TestRequiredValueEmpty(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"", "5"},
		[]string{"polo", "   "},
	)

	report := Table(schema.Stock(), tbl)
	if len(report.Rows) != 2 {
		t.Fatalf("Expected 2 failed rows, got %d", len(report.Rows))
	}

	if got, want := report.Rows[0].Messages()[0], "name: required value is empty"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got, want := report.Rows[1].Messages()[0], "quantity: required value is empty"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestOptionalNonEmptyColumn(t *testing.T) {
	s := &schema.Schema{
		Name: "test",
		Columns: []schema.Column{
			{Name: "code", Type: schema.TypeString, NonEmpty: true},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Schema should be valid: %v", err)
	}

	tbl := makeTable([]string{"code"}, []string{""})
	report := Table(s, tbl)
	if report.Valid() {
		t.Fatal("Expected invalid report")
	}
	if got, want := report.Rows[0].Messages()[0], "code: value must not be empty"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Absent optional column is fine even with NonEmpty set
	report = Table(s, makeTable([]string{"other"}, []string{"x"}))
	if len(report.Header) != 0 || len(report.Rows) != 0 {
		t.Errorf("Absent optional column should not error, got %v", report.Messages())
	}
}

func TestOptionalEmptyCellAccepted(t *testing.T) {
	tbl := makeTable(
		[]string{"nombre", "dni", "camisa"},
		[]string{"Ana Quispe", "45871236", ""},
	)

	report := Table(schema.Cargo(), tbl)
	if !report.Valid() {
		t.Fatalf("Empty optional quantity should pass, got: %v", report.Messages())
	}
}

func TestNumberBelowMinimum(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"camisa", "-2"},
	)

	report := Table(schema.Stock(), tbl)
	if report.Valid() {
		t.Fatal("Expected invalid report")
	}
	if got, want := report.Rows[0].Messages()[0], "quantity: number -2 below minimum 0"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNumberAboveMaximum(t *testing.T) {
	max := 10.0
	s := &schema.Schema{
		Name: "test",
		Columns: []schema.Column{
			{Name: "units", Type: schema.TypeNumber, Max: &max},
		},
	}

	tbl := makeTable([]string{"units"}, []string{"12.5"})
	report := Table(s, tbl)
	if report.Valid() {
		t.Fatal("Expected invalid report")
	}
	if got, want := report.Rows[0].Messages()[0], "units: number 12.5 above maximum 10"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestUnknownColumnsAreWarnings(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity", "notas"},
		[]string{"camisa", "4", "entregar lunes"},
	)

	report := Table(schema.Stock(), tbl)
	if !report.Valid() {
		t.Fatalf("Unknown columns must not fail validation, got: %v", report.Messages())
	}
	if len(report.Unknown) != 1 || report.Unknown[0] != "notas" {
		t.Errorf("Expected unknown columns [notas], got %v", report.Unknown)
	}
}

func TestColumnMatchingIsCaseSensitive(t *testing.T) {
	tbl := makeTable(
		[]string{"Name", "quantity"},
		[]string{"camisa", "4"},
	)

	report := Table(schema.Stock(), tbl)
	if report.Valid() {
		t.Fatal("Header 'Name' must not satisfy required column 'name'")
	}
	if got, want := report.Header[0].Error(), "name: required column missing"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if len(report.Unknown) != 1 || report.Unknown[0] != "Name" {
		t.Errorf("Expected unknown columns [Name], got %v", report.Unknown)
	}
}

func TestShortRowTreatedAsEmptyCells(t *testing.T) {
	tbl := table.New([]string{"name", "quantity"})
	tbl.AppendRow([]table.Cell{table.Classify("camisa")})

	report := Table(schema.Stock(), tbl)
	if report.Valid() {
		t.Fatal("Missing trailing cell should fail the required quantity check")
	}
	if got, want := report.Rows[0].Messages()[0], "quantity: required value is empty"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRowAccumulatesMultipleErrors(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"", "abc"},
	)

	report := Table(schema.Stock(), tbl)
	if len(report.Rows) != 1 {
		t.Fatalf("Expected 1 failed row, got %d", len(report.Rows))
	}
	if len(report.Rows[0].Errors) != 2 {
		t.Fatalf("Expected 2 errors in row, got %v", report.Rows[0].Messages())
	}
}

func TestReportMessagesIncludeRowNumbers(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"camisa", "4"},
		[]string{"polo", "abc"},
	)

	report := Table(schema.Stock(), tbl)
	msgs := report.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %v", msgs)
	}
	if msgs[0] != "row 2: quantity: expected number, got 'abc'" {
		t.Errorf("Unexpected message: %q", msgs[0])
	}
}

func TestReportError(t *testing.T) {
	tbl := makeTable(
		[]string{"name", "quantity"},
		[]string{"polo", "abc"},
	)

	report := Table(schema.Stock(), tbl)
	errText := report.Error()
	if !strings.Contains(errText, "validation failed with 1 error(s)") {
		t.Errorf("Unexpected error header: %q", errText)
	}
	if !strings.Contains(errText, "row 1: quantity: expected number, got 'abc'") {
		t.Errorf("Error text should list the failure, got: %q", errText)
	}

	valid := Table(schema.Stock(), makeTable([]string{"name", "quantity"}, []string{"polo", "1"}))
	if valid.Error() != "" {
		t.Errorf("Valid report should render empty error, got %q", valid.Error())
	}
}
