// Package report builds the manifest written into each run folder,
// as Markdown and as rendered HTML.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// SkippedRow is one row excluded by validation
type SkippedRow struct {
	Row      int
	Messages []string
}

// Data is everything the manifest shows about a run
type Data struct {
	Title       string // empty means "Generation run"
	GeneratedAt time.Time
	Source      string
	Sheet       string
	Schema      string
	RowCount    int
	ValidRows   int
	Duration    time.Duration
	Warnings    []string
	Skipped     []SkippedRow
	Documents   []string // file names inside the run folder
}

// Markdown renders the manifest
func Markdown(d Data) string {
	title := d.Title
	if title == "" {
		title = "Generation run"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- Date: %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- Source: `%s`\n", d.Source)
	if d.Sheet != "" {
		fmt.Fprintf(&sb, "- Sheet: %s\n", d.Sheet)
	}
	fmt.Fprintf(&sb, "- Schema: %s\n", d.Schema)
	fmt.Fprintf(&sb, "- Rows: %d total, %d valid, %d skipped\n", d.RowCount, d.ValidRows, len(d.Skipped))
	fmt.Fprintf(&sb, "- Documents: %d\n", len(d.Documents))
	fmt.Fprintf(&sb, "- Duration: %s\n", d.Duration.Round(time.Millisecond))

	if len(d.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range d.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	if len(d.Skipped) > 0 {
		sb.WriteString("\n## Skipped rows\n\n")
		sb.WriteString("| Row | Errors |\n")
		sb.WriteString("|----:|--------|\n")
		for _, s := range d.Skipped {
			fmt.Fprintf(&sb, "| %d | %s |\n", s.Row, strings.Join(s.Messages, "; "))
		}
	}

	if len(d.Documents) > 0 {
		sb.WriteString("\n## Documents\n\n")
		for _, doc := range d.Documents {
			fmt.Fprintf(&sb, "- `%s`\n", doc)
		}
	}

	return sb.String()
}

// HTML renders the manifest to a standalone HTML page
func HTML(d Data) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(d)), &body); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	title := d.Title
	if title == "" {
		title = "Generation run"
	}
	fmt.Fprintf(&page, "<title>%s</title>\n</head>\n<body>\n", title)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

// Write renders report.md and report.html into dir
func Write(dir string, d Data) error {
	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(Markdown(d)), 0644); err != nil {
		return fmt.Errorf("write report.md: %w", err)
	}

	html, err := HTML(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "report.html"), []byte(html), 0644); err != nil {
		return fmt.Errorf("write report.html: %w", err)
	}
	return nil
}
