package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommand_ValidData(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name,quantity",
		"Camisa,12",
		"Polo,3",
	)

	var output bytes.Buffer
	err := validateFileWithOutput(path, validateOptions{Schema: "stock"}, &output)

	if err != nil {
		t.Errorf("validateFileWithOutput() returned error for valid data: %v", err)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "✓ Loaded 2 data row(s)") {
		t.Errorf("Expected row count message, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "✓ Schema stock: 2 column(s)") {
		t.Errorf("Expected schema message, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "Data is valid!") {
		t.Errorf("Expected success message, got: %s", outputStr)
	}
}

func TestValidateCommand_InvalidNumber(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name,quantity",
		"Camisa,abc",
	)

	var output bytes.Buffer
	err := validateFileWithOutput(path, validateOptions{Schema: "stock"}, &output)

	if err == nil {
		t.Fatal("validateFileWithOutput() should return error for invalid data")
	}
	if err.Error() != "validation failed with 1 error(s)" {
		t.Errorf("Expected validation error, got: %v", err)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "✗ Validation failed") {
		t.Errorf("Expected validation failed message, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "✗ row 1: quantity: expected number, got 'abc'") {
		t.Errorf("Expected row error detail, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "Found 1 validation error(s)!") {
		t.Errorf("Expected error count message, got: %s", outputStr)
	}
}

func TestValidateCommand_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name",
		"Camisa",
	)

	var output bytes.Buffer
	err := validateFileWithOutput(path, validateOptions{Schema: "stock"}, &output)

	if err == nil {
		t.Fatal("validateFileWithOutput() should return error for missing column")
	}

	if !strings.Contains(output.String(), "✗ quantity: required column missing") {
		t.Errorf("Expected missing column error, got: %s", output.String())
	}
}

func TestValidateCommand_UnknownColumnWarning(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name,quantity,color",
		"Camisa,12,azul",
	)

	var output bytes.Buffer
	err := validateFileWithOutput(path, validateOptions{Schema: "stock"}, &output)

	if err != nil {
		t.Errorf("Unknown columns should warn, not fail: %v", err)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "1 column(s) not in schema \"stock\"") {
		t.Errorf("Expected unknown column warning, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "color") {
		t.Errorf("Expected warning to name the column, got: %s", outputStr)
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	var output bytes.Buffer
	err := validateFileWithOutput(filepath.Join(t.TempDir(), "nope.csv"), validateOptions{Schema: "stock"}, &output)

	if err == nil {
		t.Fatal("validateFileWithOutput() should return error for missing file")
	}
	if !strings.Contains(output.String(), "✗ Failed to load") {
		t.Errorf("Expected load failure message, got: %s", output.String())
	}
}

func TestValidateCommand_WritesReport(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name,quantity",
		"Camisa,12",
		"Polo,abc",
	)
	reportPath := filepath.Join(dir, "validacion.md")

	var output bytes.Buffer
	err := validateFileWithOutput(path, validateOptions{Schema: "stock", ReportPath: reportPath}, &output)

	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(output.String(), "✓ Report written to "+reportPath) {
		t.Errorf("Expected report confirmation, got: %s", output.String())
	}

	content, readErr := os.ReadFile(reportPath)
	if readErr != nil {
		t.Fatalf("Expected report file: %v", readErr)
	}
	text := string(content)
	if !strings.Contains(text, "# Validation report") {
		t.Errorf("Expected report title, got: %s", text)
	}
	if !strings.Contains(text, "2 total, 1 valid, 1 skipped") {
		t.Errorf("Expected row counts, got: %s", text)
	}
	if !strings.Contains(text, "expected number, got 'abc'") {
		t.Errorf("Expected failure detail in report, got: %s", text)
	}
}

func TestValidateCommand_UnknownSchema(t *testing.T) {
	var output bytes.Buffer
	err := validateFileWithOutput("whatever.csv", validateOptions{Schema: "tallas"}, &output)

	if err == nil || !strings.Contains(err.Error(), "failed to resolve schema") {
		t.Errorf("Expected schema resolution error, got: %v", err)
	}
}

func TestValidateCommand_Execute(t *testing.T) {
	isolateSettings(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name,quantity",
		"Camisa,12",
	)

	output, err := executeCommand(t, NewValidateCommand(), path, "--schema", "stock")

	if err != nil {
		t.Errorf("Expected valid run, got error: %v", err)
	}
	if !strings.Contains(output, "Data is valid!") {
		t.Errorf("Expected success output, got: %s", output)
	}
}

func TestValidateCommand_ExecuteWithSheetOnCSV(t *testing.T) {
	isolateSettings(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "stock.csv",
		"name,quantity",
		"Camisa,12",
	)

	// CSV files have no sheets; the flag is accepted and ignored
	output, err := executeCommand(t, NewValidateCommand(), path, "--schema", "stock", "--sheet", "Agosto")

	if err != nil {
		t.Errorf("Expected --sheet to be ignored for CSV, got error: %v", err)
	}
	if !strings.Contains(output, "Data is valid!") {
		t.Errorf("Expected success output, got: %s", output)
	}
}
