// Package schema defines the column schemas rows are validated against:
// built-in schemas for the cargo and stock workflows plus user-supplied
// schemas loaded from YAML files.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cell type names accepted in schema files
const (
	TypeString = "string"
	TypeNumber = "number"
)

// Column describes one expected spreadsheet column
type Column struct {
	// Name is the header the column appears under (matched case-sensitively)
	Name string `yaml:"name"`

	// Type is the expected cell type: "string" or "number"
	Type string `yaml:"type"`

	// Required makes the column mandatory: it must exist in the header and
	// hold a value in every row
	Required bool `yaml:"required"`

	// NonEmpty rejects blank cells in an optional column when the column is
	// present in the file
	NonEmpty bool `yaml:"non_empty"`

	// Min is the lowest accepted numeric value (nil = unbounded)
	Min *float64 `yaml:"min"`

	// Max is the highest accepted numeric value (nil = unbounded)
	Max *float64 `yaml:"max"`
}

// Schema is a named set of expected columns
type Schema struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
}

// Column finds a column definition by name
func (s *Schema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in definition order
func (s *Schema) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		names = append(names, col.Name)
	}
	return names
}

// NumberColumns returns the names of number-typed columns in definition order
func (s *Schema) NumberColumns() []string {
	var names []string
	for _, col := range s.Columns {
		if col.Type == TypeNumber {
			names = append(names, col.Name)
		}
	}
	return names
}

// Validate checks the schema definition itself
// Returns an error if any column is malformed
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name is required")
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema %q has no columns", s.Name)
	}

	validTypes := map[string]bool{
		TypeString: true,
		TypeNumber: true,
	}

	seen := make(map[string]bool)
	for _, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("schema %q has a column without a name", s.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("schema %q defines column %q twice", s.Name, col.Name)
		}
		seen[col.Name] = true

		if !validTypes[col.Type] {
			return fmt.Errorf("column %q has invalid type %q, must be one of: string, number", col.Name, col.Type)
		}
		if col.Type == TypeString && (col.Min != nil || col.Max != nil) {
			return fmt.Errorf("column %q is a string column and cannot take min/max bounds", col.Name)
		}
		if col.Min != nil && col.Max != nil && *col.Min > *col.Max {
			return fmt.Errorf("column %q has min %v greater than max %v", col.Name, *col.Min, *col.Max)
		}
	}

	return nil
}

// Load reads and validates a schema from a YAML file
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}

	return &s, nil
}

// Resolve returns the schema for a --schema argument: a built-in name when
// one matches, otherwise the argument is treated as a YAML file path.
func Resolve(nameOrPath string) (*Schema, error) {
	if s, ok := Builtin(nameOrPath); ok {
		return s, nil
	}
	return Load(nameOrPath)
}

// uniformColumns are the per-garment quantity columns of the order workbook
var uniformColumns = []string{
	"camisa", "blusa", "mandilon", "andarin",
	"deliverypolo", "deliverycasaca", "deliverygorro", "packergorra", "packerpolo",
}

// Cargo returns the built-in schema for uniform order worksheets: the
// person identity columns plus one optional quantity column per garment.
func Cargo() *Schema {
	columns := []Column{
		{Name: "nombre", Type: TypeString, Required: true},
		{Name: "dni", Type: TypeString, Required: true},
		{Name: "puesto", Type: TypeString},
		{Name: "tienda", Type: TypeString},
	}
	for _, name := range uniformColumns {
		columns = append(columns, Column{
			Name: name,
			Type: TypeNumber,
			Min:  floatPtr(0),
		})
	}
	return &Schema{Name: "cargo", Columns: columns}
}

// Stock returns the built-in schema for stock worksheets
func Stock() *Schema {
	return &Schema{
		Name: "stock",
		Columns: []Column{
			{Name: "name", Type: TypeString, Required: true},
			{Name: "quantity", Type: TypeNumber, Required: true, Min: floatPtr(0)},
		},
	}
}

// Builtin looks up a built-in schema by name
func Builtin(name string) (*Schema, bool) {
	switch name {
	case "cargo":
		return Cargo(), true
	case "stock":
		return Stock(), true
	default:
		return nil, false
	}
}

// BuiltinNames lists the built-in schema names
func BuiltinNames() []string {
	return []string{"cargo", "stock"}
}

func floatPtr(v float64) *float64 {
	return &v
}
