package loader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dquiroga/cargogen/internal/table"
)

// workbook builds an in-memory .xlsx and returns a reader over its bytes
func workbook(t *testing.T, build func(f *excelize.File)) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	build(f)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func setCells(t *testing.T, f *excelize.File, sheet string, cells map[string]interface{}) {
	t.Helper()
	for ref, value := range cells {
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			t.Fatalf("Failed to set cell %s: %v", ref, err)
		}
	}
}

func TestXLSXLoadFirstSheet(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "name", "B1": "quantity",
			"A2": "camisa blanca", "B2": 10,
			"A3": "polo delivery", "B3": 3.5,
		})
	})

	tbl, err := NewXLSXLoader().Load(r, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.Sheet != "Sheet1" {
		t.Errorf("Expected sheet Sheet1, got %q", tbl.Sheet)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "name" || tbl.Columns[1] != "quantity" {
		t.Fatalf("Unexpected columns: %v", tbl.Columns)
	}
	if tbl.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.RowCount())
	}

	qty := tbl.Rows[0].CellAt(1)
	if qty.Kind != table.Number || qty.Num != 10 {
		t.Errorf("Expected numeric cell 10, got %+v", qty)
	}
	qty = tbl.Rows[1].CellAt(1)
	if qty.Kind != table.Number || qty.Num != 3.5 {
		t.Errorf("Expected numeric cell 3.5, got %+v", qty)
	}
}

func TestXLSXNamedSheet(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		if _, err := f.NewSheet("Datos"); err != nil {
			t.Fatalf("Failed to add sheet: %v", err)
		}
		setCells(t, f, "Sheet1", map[string]interface{}{"A1": "otra"})
		setCells(t, f, "Datos", map[string]interface{}{
			"A1": "name", "A2": "polo",
		})
	})

	tbl, err := NewXLSXLoader().Load(r, Options{Sheet: "Datos"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.Sheet != "Datos" {
		t.Errorf("Expected sheet Datos, got %q", tbl.Sheet)
	}
	if tbl.RowCount() != 1 {
		t.Errorf("Expected 1 row, got %d", tbl.RowCount())
	}
}

func TestXLSXMissingSheetListsAvailable(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{"A1": "name"})
	})

	_, err := NewXLSXLoader().Load(r, Options{Sheet: "Inventario"})
	if err == nil {
		t.Fatal("Expected error for missing sheet")
	}
	if !strings.Contains(err.Error(), `sheet "Inventario" not found`) {
		t.Errorf("Unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "Sheet1") {
		t.Errorf("Error should list available sheets, got: %v", err)
	}
}

func TestXLSXHeaderRowOffset(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "PEDIDO DE UNIFORMES",
			"A3": "nombre", "B3": "dni",
			"A4": "Ana Quispe", "B4": "45871236",
		})
	})

	tbl, err := NewXLSXLoader().Load(r, Options{HeaderRow: 3})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "nombre" {
		t.Fatalf("Unexpected columns: %v", tbl.Columns)
	}
	if tbl.RowCount() != 1 {
		t.Fatalf("Expected 1 row, got %d", tbl.RowCount())
	}
	if got := tbl.Rows[0].CellAt(0).Text; got != "Ana Quispe" {
		t.Errorf("Expected 'Ana Quispe', got %q", got)
	}
}

func TestXLSXMetadataCells(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"C3": " 15/08/2026 ",
			"C4": "TIENDA SAN MIGUEL",
			"A6": "nombre",
			"A7": "Ana Quispe",
		})
	})

	opts := Options{
		HeaderRow: 6,
		Metadata: map[string]string{
			"fecha_solicitud": "C3",
			"tienda":          "C4",
		},
	}
	tbl, err := NewXLSXLoader().Load(r, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := tbl.Meta["fecha_solicitud"]; got != "15/08/2026" {
		t.Errorf("Expected trimmed metadata value, got %q", got)
	}
	if got := tbl.Meta["tienda"]; got != "TIENDA SAN MIGUEL" {
		t.Errorf("Expected 'TIENDA SAN MIGUEL', got %q", got)
	}
}

func TestXLSXSkipsBlankRows(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "name",
			"A2": "camisa",
			// row 3 left blank
			"A4": "polo",
		})
	})

	tbl, err := NewXLSXLoader().Load(r, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.RowCount() != 2 {
		t.Fatalf("Expected blank row dropped, got %d rows", tbl.RowCount())
	}
	if tbl.Rows[0].Number != 1 || tbl.Rows[1].Number != 2 {
		t.Errorf("Expected sequential row numbers, got %d and %d", tbl.Rows[0].Number, tbl.Rows[1].Number)
	}
}

func TestXLSXMaxRows(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "name",
			"A2": "uno", "A3": "dos", "A4": "tres", "A5": "cuatro",
		})
	})

	tbl, err := NewXLSXLoader().Load(r, Options{MaxRows: 2})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.RowCount() != 2 {
		t.Errorf("Expected 2 rows with MaxRows 2, got %d", tbl.RowCount())
	}
}

func TestXLSXNotAWorkbook(t *testing.T) {
	_, err := NewXLSXLoader().Load(strings.NewReader("plain text"), Options{})
	if err == nil {
		t.Fatal("Expected error for non-workbook input")
	}

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError, got %T: %v", err, err)
	}
	if fe.Format != FormatXLSX {
		t.Errorf("Expected xlsx format, got %v", fe.Format)
	}
}

func TestXLSXSheets(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		if _, err := f.NewSheet("Agosto"); err != nil {
			t.Fatalf("Failed to add sheet: %v", err)
		}
		if _, err := f.NewSheet("Septiembre"); err != nil {
			t.Fatalf("Failed to add sheet: %v", err)
		}
	})

	sheets, err := NewXLSXLoader().Sheets(r)
	if err != nil {
		t.Fatalf("Sheets failed: %v", err)
	}
	want := []string{"Sheet1", "Agosto", "Septiembre"}
	if len(sheets) != len(want) {
		t.Fatalf("Expected %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("Expected sheet %q at %d, got %q", want[i], i, sheets[i])
		}
	}
}
