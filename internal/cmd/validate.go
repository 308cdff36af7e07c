package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dquiroga/cargogen/internal/display"
	"github.com/dquiroga/cargogen/internal/loader"
	"github.com/dquiroga/cargogen/internal/report"
	"github.com/dquiroga/cargogen/internal/schema"
	"github.com/dquiroga/cargogen/internal/validate"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a spreadsheet against a schema",
		Long: `Load a spreadsheet and check every row against a schema:
  - Required columns present in the header
  - Required cells filled
  - Number columns hold numbers, within their bounds
  - Unknown columns reported as warnings

Examples:
  cargogen validate pedidos.xlsx
  cargogen validate pedidos.xlsx --sheet "Plaza Norte"
  cargogen validate stock.csv --schema stock
  cargogen validate pedidos.xlsx --report validacion.md

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := validateOptions{}
			opts.Schema, _ = cmd.Flags().GetString("schema")
			opts.Sheet, _ = cmd.Flags().GetString("sheet")
			opts.HeaderRow, _ = cmd.Flags().GetInt("header-row")
			opts.ReportPath, _ = cmd.Flags().GetString("report")
			return validateFileWithOutput(args[0], opts, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("schema", "cargo", "Schema name (cargo, stock) or path to a YAML schema file")
	cmd.Flags().String("sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().Int("header-row", 0, "Row holding the column names, 1-based (default: 1)")
	cmd.Flags().String("report", "", "Write a Markdown validation report to this path")

	return cmd
}

// validateOptions carries the validate command's flag values
type validateOptions struct {
	Schema     string
	Sheet      string
	HeaderRow  int
	ReportPath string
}

// validateFileWithOutput validates a spreadsheet with custom output writer (for testing)
func validateFileWithOutput(path string, opts validateOptions, output io.Writer) error {
	s, err := schema.Resolve(opts.Schema)
	if err != nil {
		return fmt.Errorf("failed to resolve schema: %w", err)
	}

	display.DisplayLoading(output, path)
	tbl, err := loader.LoadFile(path, loader.Options{
		Sheet:     opts.Sheet,
		HeaderRow: opts.HeaderRow,
	})
	if err != nil {
		fmt.Fprintf(output, "✗ Failed to load %s\n", path)
		fmt.Fprintf(output, "  Error: %v\n", err)
		return fmt.Errorf("load error: %w", err)
	}

	if tbl.Sheet != "" {
		fmt.Fprintf(output, "✓ Loaded %d data row(s) from sheet %q\n", tbl.RowCount(), tbl.Sheet)
	} else {
		fmt.Fprintf(output, "✓ Loaded %d data row(s)\n", tbl.RowCount())
	}
	fmt.Fprintf(output, "✓ Schema %s: %d column(s)\n", s.Name, len(s.Columns))

	rep := validate.Table(s, tbl)

	if len(rep.Unknown) > 0 {
		warning := display.Warning{
			Title:   fmt.Sprintf("%d column(s) not in schema %q", len(rep.Unknown), s.Name),
			Message: "Unknown columns pass through to placeholders unchecked.",
			Files:   rep.Unknown,
		}
		warning.Display(output)
	}

	if opts.ReportPath != "" {
		if err := writeValidationReport(opts.ReportPath, rep); err != nil {
			return err
		}
		fmt.Fprintf(output, "✓ Report written to %s\n", opts.ReportPath)
	}

	errors := rep.Messages()
	if len(errors) == 0 {
		fmt.Fprintf(output, "✓ All %d row(s) valid\n", tbl.RowCount())
		fmt.Fprintf(output, "\n✓ Data is valid!\n")
		return nil
	}

	// Report all validation errors
	fmt.Fprintf(output, "\n✗ Validation failed\n")
	for _, errMsg := range errors {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errors))

	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}

// writeValidationReport renders the validation outcome as a standalone
// Markdown manifest at path.
func writeValidationReport(path string, rep *validate.Report) error {
	data := report.Data{
		Title:       "Validation report",
		GeneratedAt: time.Now(),
		Source:      rep.Source,
		Sheet:       rep.Sheet,
		Schema:      rep.Schema,
		RowCount:    rep.RowCount,
		ValidRows:   rep.RowCount - len(rep.Rows),
	}
	for _, col := range rep.Unknown {
		data.Warnings = append(data.Warnings, fmt.Sprintf("column %q is not in schema %q", col, rep.Schema))
	}
	for _, err := range rep.Header {
		data.Warnings = append(data.Warnings, err.Error())
	}
	for _, res := range rep.Rows {
		skipped := report.SkippedRow{Row: res.Row}
		for _, err := range res.Errors {
			skipped.Messages = append(skipped.Messages, err.Error())
		}
		data.Skipped = append(data.Skipped, skipped)
	}

	if err := os.WriteFile(path, []byte(report.Markdown(data)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
