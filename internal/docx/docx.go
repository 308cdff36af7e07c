// Package docx fills Word document templates. Placeholders are
// {{name}} markers; they are replaced everywhere text occurs: body
// paragraphs, table cells, headers and footers.
package docx

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// placeholderPattern matches {{name}} markers, tolerating inner spaces
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// TemplateError reports a template file that could not be read as a
// Word document
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Fill opens the template, substitutes values and saves the result to
// outPath. Any placeholder left without a value fails with a
// *TemplateError naming it, and nothing is written. One call produces
// exactly one output document.
func Fill(templatePath string, values map[string]string, outPath string) error {
	tpl, err := Open(templatePath)
	if err != nil {
		return err
	}

	if unresolved := tpl.Substitute(values); len(unresolved) > 0 {
		return &TemplateError{
			Path: templatePath,
			Err:  fmt.Errorf("no value for placeholder {{%s}}", strings.Join(unresolved, "}}, {{")),
		}
	}

	return tpl.SaveTo(outPath)
}

// Placeholders lists the distinct placeholder names a template uses
func Placeholders(path string) ([]string, error) {
	tpl, err := Open(path)
	if err != nil {
		return nil, err
	}
	return tpl.Placeholders(), nil
}

// Template is a loaded .docx template. Substitution mutates the
// in-memory document, so open a fresh Template for each output file.
type Template struct {
	path string
	doc  *document.Document
}

// Open loads a template from disk
func Open(path string) (*Template, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("access template: %w", err)
	}

	doc, err := document.Open(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}

	return &Template{path: path, doc: doc}, nil
}

// Path returns the file the template was loaded from
func (t *Template) Path() string {
	return t.path
}

// Placeholders returns the distinct placeholder names in the order they
// first occur, walking body, tables, headers and footers.
func (t *Template) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)

	for _, p := range t.paragraphs() {
		text := joinRuns(p)
		for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
			if !seen[match[1]] {
				seen[match[1]] = true
				names = append(names, match[1])
			}
		}
	}

	return names
}

// Substitute replaces each {{name}} marker with its value. Markers
// whose name has no entry in values are left in place; their distinct
// names are returned.
func (t *Template) Substitute(values map[string]string) []string {
	var unresolved []string
	seen := make(map[string]bool)

	for _, p := range t.paragraphs() {
		for _, name := range fillParagraph(p, values) {
			if !seen[name] {
				seen[name] = true
				unresolved = append(unresolved, name)
			}
		}
	}

	return unresolved
}

// Text returns the document's text with paragraphs joined by newlines.
// Body paragraphs come first, then table cells, headers and footers.
func (t *Template) Text() string {
	var out []byte
	for _, p := range t.paragraphs() {
		out = append(out, joinRuns(p)...)
		out = append(out, '\n')
	}
	return string(out)
}

// SaveTo writes the document to path
func (t *Template) SaveTo(path string) error {
	if err := t.doc.SaveToFile(path); err != nil {
		return fmt.Errorf("save document %s: %w", path, err)
	}
	return nil
}

// paragraphs collects every paragraph that can hold placeholder text
func (t *Template) paragraphs() []document.Paragraph {
	paras := t.doc.Paragraphs()

	for _, tbl := range t.doc.Tables() {
		for _, row := range tbl.Rows() {
			for _, cell := range row.Cells() {
				paras = append(paras, cell.Paragraphs()...)
			}
		}
	}
	for _, hdr := range t.doc.Headers() {
		paras = append(paras, hdr.Paragraphs()...)
	}
	for _, ftr := range t.doc.Footers() {
		paras = append(paras, ftr.Paragraphs()...)
	}

	return paras
}

// fillParagraph substitutes placeholders in one paragraph and returns
// the names it could not resolve.
//
// Word splits literal text into runs at arbitrary points, so a marker
// like {{nombre}} may span several runs. Substitution within a single
// run is tried first to preserve run formatting; only when a marker
// spans runs is the paragraph's text collapsed into its first run.
func fillParagraph(p document.Paragraph, values map[string]string) []string {
	runs := p.Runs()
	if len(runs) == 0 {
		return nil
	}

	for _, run := range runs {
		text := run.Text()
		replaced := substitute(text, values)
		if replaced != text {
			run.ClearContent()
			run.AddText(replaced)
		}
	}

	runs = p.Runs()
	joined := joinRuns(p)
	collapsed := substitute(joined, values)
	if collapsed != joined {
		runs[0].ClearContent()
		runs[0].AddText(collapsed)
		for _, run := range runs[1:] {
			p.RemoveRun(run)
		}
		joined = collapsed
	}

	var unresolved []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(joined, -1) {
		unresolved = append(unresolved, match[1])
	}
	return unresolved
}

// substitute replaces every marker whose name is present in values,
// leaving unknown markers untouched
func substitute(text string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(marker string) string {
		name := placeholderPattern.FindStringSubmatch(marker)[1]
		if value, ok := values[name]; ok {
			return value
		}
		return marker
	})
}

func joinRuns(p document.Paragraph) string {
	var text string
	for _, run := range p.Runs() {
		text += run.Text()
	}
	return text
}
