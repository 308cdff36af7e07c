package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dquiroga/cargogen/internal/settings"
)

func TestTemplatesCommand_ListsPlaceholders(t *testing.T) {
	isolateSettings(t)
	dir := t.TempDir()
	writeTemplateDoc(t, dir, "entrega.docx", "Entrega a {{nombre}}, DNI {{dni}}")
	writeTemplateDoc(t, dir, "resumen.docx", "Sin marcadores")
	if err := os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write decoy: %v", err)
	}

	output, err := executeCommand(t, NewTemplatesCommand(), dir)

	if err != nil {
		t.Fatalf("Expected listing to succeed, got: %v", err)
	}
	if !strings.Contains(output, "Templates in "+dir) {
		t.Errorf("Expected header, got: %s", output)
	}
	if !strings.Contains(output, "entrega.docx") {
		t.Errorf("Expected template name, got: %s", output)
	}
	if !strings.Contains(output, "{{nombre}}") || !strings.Contains(output, "{{dni}}") {
		t.Errorf("Expected placeholders, got: %s", output)
	}
	if !strings.Contains(output, "(no placeholders)") {
		t.Errorf("Expected empty placeholder note for resumen.docx, got: %s", output)
	}
	if strings.Contains(output, "notas.txt") {
		t.Errorf("Expected non-docx files to be skipped, got: %s", output)
	}
}

func TestTemplatesCommand_WarnsAboutLockFiles(t *testing.T) {
	isolateSettings(t)
	dir := t.TempDir()
	writeTemplateDoc(t, dir, "entrega.docx", "{{nombre}}")
	if err := os.WriteFile(filepath.Join(dir, "~$entrega.docx"), []byte("lock"), 0644); err != nil {
		t.Fatalf("Failed to plant lock file: %v", err)
	}

	output, err := executeCommand(t, NewTemplatesCommand(), dir)

	if err != nil {
		t.Fatalf("Expected listing to succeed, got: %v", err)
	}
	if !strings.Contains(output, "open in Word") {
		t.Errorf("Expected lock warning, got: %s", output)
	}
	if !strings.Contains(output, "~$entrega.docx") {
		t.Errorf("Expected lock file name, got: %s", output)
	}
}

func TestTemplatesCommand_EmptyFolder(t *testing.T) {
	isolateSettings(t)
	dir := t.TempDir()

	output, err := executeCommand(t, NewTemplatesCommand(), dir)

	if err != nil {
		t.Fatalf("Expected empty listing to succeed, got: %v", err)
	}
	if !strings.Contains(output, "No templates found in "+dir) {
		t.Errorf("Expected empty message, got: %s", output)
	}
}

func TestTemplatesCommand_DefaultDirFromSettings(t *testing.T) {
	dir := t.TempDir()
	writeTemplateDoc(t, dir, "entrega.docx", "{{nombre}}")

	cfgPath := isolateSettings(t)
	cfg := settings.Default()
	cfg.TemplatesDir = dir
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	output, err := executeCommand(t, NewTemplatesCommand())

	if err != nil {
		t.Fatalf("Expected listing to succeed, got: %v", err)
	}
	if !strings.Contains(output, "entrega.docx") {
		t.Errorf("Expected template from settings dir, got: %s", output)
	}
}

func TestTemplatesCommand_MissingFolder(t *testing.T) {
	isolateSettings(t)

	_, err := executeCommand(t, NewTemplatesCommand(), filepath.Join(t.TempDir(), "nope"))

	if err == nil {
		t.Error("Expected error for missing folder")
	}
}
