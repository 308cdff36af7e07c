package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/unidoc/unioffice/document"

	"github.com/dquiroga/cargogen/internal/settings"
)

// isolateSettings points the settings file into a temp dir so tests
// never touch a real config.json
func isolateSettings(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(settings.EnvConfigPath, path)
	return path
}

// writeCSV writes a spreadsheet fixture with one line per row
func writeCSV(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// writeTemplateDoc assembles a .docx with one paragraph per line and
// saves it under dir
func writeTemplateDoc(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	doc := document.New()
	for _, line := range lines {
		doc.AddParagraph().AddRun().AddText(line)
	}
	path := filepath.Join(dir, name)
	if err := doc.SaveToFile(path); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}
	return path
}

// executeCommand runs a command with args and returns its combined output
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
