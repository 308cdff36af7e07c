package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dquiroga/cargogen/internal/schema"
)

func TestSchemaListCommand(t *testing.T) {
	output, err := executeCommand(t, NewSchemaCommand(), "list")

	if err != nil {
		t.Fatalf("Expected list to succeed, got: %v", err)
	}
	if !strings.Contains(output, "cargo  (13 columns)") {
		t.Errorf("Expected cargo entry, got: %s", output)
	}
	if !strings.Contains(output, "stock  (2 columns)") {
		t.Errorf("Expected stock entry, got: %s", output)
	}
}

func TestSchemaShowCommand_Builtin(t *testing.T) {
	output, err := executeCommand(t, NewSchemaCommand(), "show", "cargo")

	if err != nil {
		t.Fatalf("Expected show to succeed, got: %v", err)
	}
	if !strings.Contains(output, "Schema cargo") {
		t.Errorf("Expected schema header, got: %s", output)
	}
	if !strings.Contains(output, "nombre") || !strings.Contains(output, "string, required") {
		t.Errorf("Expected required column line, got: %s", output)
	}
	if !strings.Contains(output, "camisa") || !strings.Contains(output, "number, min 0") {
		t.Errorf("Expected number column line, got: %s", output)
	}
}

func TestSchemaShowCommand_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tallas.yaml")
	content := `name: tallas
columns:
  - name: talla
    type: string
    required: true
  - name: cantidad
    type: number
    min: 1
    max: 99
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write schema file: %v", err)
	}

	output, err := executeCommand(t, NewSchemaCommand(), "show", path)

	if err != nil {
		t.Fatalf("Expected show to succeed, got: %v", err)
	}
	if !strings.Contains(output, "Schema tallas") {
		t.Errorf("Expected schema header, got: %s", output)
	}
	if !strings.Contains(output, "min 1, max 99") {
		t.Errorf("Expected bounds, got: %s", output)
	}
}

func TestSchemaShowCommand_Unknown(t *testing.T) {
	_, err := executeCommand(t, NewSchemaCommand(), "show", "inexistente")

	if err == nil {
		t.Error("Expected error for unknown schema")
	}
}

func TestDescribeColumn(t *testing.T) {
	min, max := 0.0, 10.5

	tests := []struct {
		col  schema.Column
		want string
	}{
		{schema.Column{Name: "dni", Type: "string", Required: true}, "dni              string, required"},
		{schema.Column{Name: "camisa", Type: "number", Min: &min}, "camisa           number, min 0"},
		{schema.Column{Name: "descuento", Type: "number", NonEmpty: true, Max: &max}, "descuento        number, non-empty, max 10.5"},
	}

	for _, tt := range tests {
		if got := describeColumn(tt.col); got != tt.want {
			t.Errorf("describeColumn(%s):\n  want %q\n  got  %q", tt.col.Name, tt.want, got)
		}
	}
}
