// Package generate orchestrates a document generation run: validate the
// table, create the per-run destination folder, fill every selected
// template for every valid row, and write the run report.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dquiroga/cargogen/internal/docx"
	"github.com/dquiroga/cargogen/internal/logger"
	"github.com/dquiroga/cargogen/internal/report"
	"github.com/dquiroga/cargogen/internal/schema"
	"github.com/dquiroga/cargogen/internal/table"
	"github.com/dquiroga/cargogen/internal/validate"
)

// Options control one generation run
type Options struct {
	// Dest is the parent folder the run subfolder is created under
	Dest string

	// Templates are the .docx templates filled for every valid row
	Templates []string

	// NameColumns pick the identity columns for output names, in order.
	// Empty means the schema's first required string column.
	NameColumns []string

	// Combine writes one document per template for the whole table,
	// with aggregate placeholders, instead of one per row
	Combine bool

	// Overwrite replaces same-named outputs instead of versioning them
	Overwrite bool

	// DryRun resolves validation and output names but writes nothing
	DryRun bool

	// Now supplies the clock; nil means time.Now. The run stamp and the
	// fecha_documento placeholder both come from it.
	Now func() time.Time
}

// Document is one generated output file
type Document struct {
	Template string // template path used
	Row      int    // data row number, 0 for combined documents
	Path     string // written file, or the intended file in a dry run
}

// Result summarizes one generation run. When Run returns an error the
// result still carries whatever was resolved before the failure,
// including the validation report.
type Result struct {
	RunDir    string
	StartedAt time.Time
	Duration  time.Duration
	DryRun    bool
	Report    *validate.Report
	Documents []Document
}

// Run executes one generation run. Invalid rows are skipped and
// reported; a run with no valid rows is refused. Template errors and
// write failures abort the run.
func Run(tbl *table.Table, s *schema.Schema, opts Options, log logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if opts.Dest == "" {
		return nil, fmt.Errorf("destination path is empty")
	}
	if len(opts.Templates) == 0 {
		return nil, fmt.Errorf("no templates selected")
	}

	clock := time.Now
	if opts.Now != nil {
		clock = opts.Now
	}
	start := time.Now()
	stamp := clock()

	rep := validate.Table(s, tbl)
	result := &Result{StartedAt: stamp, DryRun: opts.DryRun, Report: rep}

	for _, name := range rep.Unknown {
		log.LogWarn(fmt.Sprintf("column %q is not in schema %q, values pass through to placeholders unchecked", name, s.Name))
	}
	if len(rep.Header) > 0 {
		return result, fmt.Errorf("table does not fit schema %q: %w", s.Name, errorFromReport(rep))
	}

	var validRows []table.Row
	skipped := make(map[int]bool)
	for _, res := range rep.Rows {
		skipped[res.Row] = true
		log.LogWarn(fmt.Sprintf("row %d skipped: %s", res.Row, strings.Join(res.Messages(), "; ")))
	}
	for _, row := range tbl.Rows {
		if !skipped[row.Number] {
			validRows = append(validRows, row)
		}
	}
	if len(validRows) == 0 {
		return result, fmt.Errorf("no valid rows to generate (%d of %d failed validation)", len(rep.Rows), rep.RowCount)
	}

	runDir := filepath.Join(opts.Dest, RunFolderName(stamp, NewRunID()))
	result.RunDir = runDir
	fecha := SpanishDate(stamp)

	if err := preflightTemplates(tbl, s, opts, fecha); err != nil {
		return result, err
	}

	if !opts.DryRun {
		if err := os.MkdirAll(runDir, 0755); err != nil {
			return result, fmt.Errorf("create run folder: %w", err)
		}
		log.LogInfo("run folder " + runDir)
	}

	claimed := make(map[string]bool)
	if opts.Combine {
		values := combineValues(tbl, s, validRows, fecha)
		identity := combineIdentity(tbl)
		for _, tp := range opts.Templates {
			outPath := claimPath(runDir, templateSlug(tp)+"-"+identity, claimed, opts.Overwrite)
			if !opts.DryRun {
				if err := docx.Fill(tp, values, outPath); err != nil {
					return result, err
				}
			}
			result.Documents = append(result.Documents, Document{Template: tp, Path: outPath})
			log.LogDebug(verb(opts.DryRun) + " " + outPath)
		}
	} else {
		for _, row := range validRows {
			values := rowValues(tbl, s, row, fecha)
			identity := rowIdentity(tbl, s, row, opts.NameColumns)
			for _, tp := range opts.Templates {
				outPath := claimPath(runDir, templateSlug(tp)+"-"+identity, claimed, opts.Overwrite)
				if !opts.DryRun {
					if err := docx.Fill(tp, values, outPath); err != nil {
						return result, fmt.Errorf("row %d: %w", row.Number, err)
					}
				}
				result.Documents = append(result.Documents, Document{Template: tp, Row: row.Number, Path: outPath})
				log.LogDebug(verb(opts.DryRun) + " " + outPath)
			}
		}
	}

	result.Duration = time.Since(start)

	if !opts.DryRun {
		if err := report.Write(runDir, reportData(tbl, s, result, len(validRows))); err != nil {
			return result, fmt.Errorf("write run report: %w", err)
		}
	}

	return result, nil
}

func verb(dryRun bool) string {
	if dryRun {
		return "planned"
	}
	return "generated"
}

// errorFromReport turns a failed validation report into its aggregate
// error form
func errorFromReport(rep *validate.Report) error {
	return fmt.Errorf("%s", strings.TrimSpace(rep.Error()))
}

// preflightTemplates checks every template before anything is written:
// it must open as a document and every placeholder it uses must have a
// value source in this run.
func preflightTemplates(tbl *table.Table, s *schema.Schema, opts Options, fecha string) error {
	allowed := allowedPlaceholders(tbl, s, opts.Combine)
	for _, tp := range opts.Templates {
		names, err := docx.Placeholders(tp)
		if err != nil {
			return err
		}
		for _, name := range names {
			if !allowed[name] {
				return &docx.TemplateError{
					Path: tp,
					Err:  fmt.Errorf("no value for placeholder {{%s}}", name),
				}
			}
		}
	}
	return nil
}

// allowedPlaceholders is the set of names a template may reference in
// this run
func allowedPlaceholders(tbl *table.Table, s *schema.Schema, combine bool) map[string]bool {
	allowed := map[string]bool{"fecha_documento": true}
	for k := range tbl.Meta {
		allowed[k] = true
	}

	if combine {
		allowed["total_filas"] = true
		for _, name := range s.NumberColumns() {
			allowed["total_"+name] = true
		}
		return allowed
	}

	for _, col := range s.Columns {
		allowed[col.Name] = true
	}
	for _, name := range tbl.Columns {
		allowed[name] = true
	}
	return allowed
}

// rowValues builds the placeholder values for one row: schema columns
// default to empty, sheet metadata overlays them, and non-empty row
// cells win over both.
func rowValues(tbl *table.Table, s *schema.Schema, row table.Row, fecha string) map[string]string {
	values := make(map[string]string)
	for _, col := range s.Columns {
		values[col.Name] = ""
	}
	for k, v := range tbl.Meta {
		values[k] = v
	}
	for i, name := range tbl.Columns {
		cell := row.CellAt(i)
		if !cell.IsEmpty() {
			values[name] = cell.Value()
		} else if _, ok := values[name]; !ok {
			values[name] = ""
		}
	}
	values["fecha_documento"] = fecha
	return values
}

// combineValues builds the aggregate placeholder values for a combined
// document: row count and per-number-column totals over the valid rows.
func combineValues(tbl *table.Table, s *schema.Schema, rows []table.Row, fecha string) map[string]string {
	values := make(map[string]string)
	for k, v := range tbl.Meta {
		values[k] = v
	}
	values["fecha_documento"] = fecha
	values["total_filas"] = strconv.Itoa(len(rows))

	for _, name := range s.NumberColumns() {
		idx, ok := tbl.ColumnIndex(name)
		if !ok {
			values["total_"+name] = "0"
			continue
		}
		sum := 0.0
		for _, row := range rows {
			if cell := row.CellAt(idx); cell.Kind == table.Number {
				sum += cell.Num
			}
		}
		values["total_"+name] = strconv.FormatFloat(sum, 'f', -1, 64)
	}
	return values
}

// rowIdentity names a row for its output files
func rowIdentity(tbl *table.Table, s *schema.Schema, row table.Row, nameColumns []string) string {
	cols := nameColumns
	if len(cols) == 0 {
		if name := defaultNameColumn(s); name != "" {
			cols = []string{name}
		}
	}

	var parts []string
	for _, name := range cols {
		idx, ok := tbl.ColumnIndex(name)
		if !ok {
			continue
		}
		if slug := Slug(row.CellAt(idx).Value()); slug != "" {
			parts = append(parts, slug)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("row-%d", row.Number)
	}
	return strings.Join(parts, "-")
}

// defaultNameColumn picks the schema's first required string column
func defaultNameColumn(s *schema.Schema) string {
	for _, col := range s.Columns {
		if col.Required && col.Type == schema.TypeString {
			return col.Name
		}
	}
	return ""
}

// combineIdentity names a combined document: worksheet, else the source
// file stem
func combineIdentity(tbl *table.Table) string {
	if slug := Slug(tbl.Sheet); slug != "" {
		return slug
	}
	stem := strings.TrimSuffix(filepath.Base(tbl.Source), filepath.Ext(tbl.Source))
	if slug := Slug(stem); slug != "" {
		return slug
	}
	return "datos"
}

// claimPath reserves an output path, versioning the name when it is
// already taken in this run or on disk
func claimPath(dir, base string, claimed map[string]bool, overwrite bool) string {
	path := filepath.Join(dir, base+".docx")
	if overwrite {
		claimed[path] = true
		return path
	}

	for version := 2; claimed[path] || fileExists(path); version++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-v%d.docx", base, version))
	}
	claimed[path] = true
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// reportData maps a run result to the report's shape
func reportData(tbl *table.Table, s *schema.Schema, result *Result, validRows int) report.Data {
	data := report.Data{
		GeneratedAt: result.StartedAt,
		Source:      tbl.Source,
		Sheet:       tbl.Sheet,
		Schema:      s.Name,
		RowCount:    result.Report.RowCount,
		ValidRows:   validRows,
		Duration:    result.Duration,
	}

	for _, name := range result.Report.Unknown {
		data.Warnings = append(data.Warnings, fmt.Sprintf("column %q is not in schema %q", name, s.Name))
	}
	for _, res := range result.Report.Rows {
		data.Skipped = append(data.Skipped, report.SkippedRow{Row: res.Row, Messages: res.Messages()})
	}
	for _, doc := range result.Documents {
		data.Documents = append(data.Documents, filepath.Base(doc.Path))
	}

	return data
}
