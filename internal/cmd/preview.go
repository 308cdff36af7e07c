package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dquiroga/cargogen/internal/loader"
	"github.com/dquiroga/cargogen/internal/table"
	"github.com/spf13/cobra"
)

// NewPreviewCommand creates and returns the preview subcommand
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the first rows of a spreadsheet",
		Long: `Load a spreadsheet and print its first rows as an aligned text
grid, without validating anything.

Examples:
  cargogen preview pedidos.xlsx
  cargogen preview pedidos.xlsx --sheet "Plaza Norte" --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0])
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 0, "Rows to show (default: settings preview_rows_limit)")
	cmd.Flags().String("sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().Int("header-row", 0, "Row holding the column names, 1-based (default: 1)")

	return cmd
}

func runPreview(cmd *cobra.Command, path string) error {
	output := cmd.OutOrStdout()
	cfg, _ := loadSettings(cmd)

	limit, _ := cmd.Flags().GetInt("limit")
	if !cmd.Flags().Changed("limit") {
		limit = cfg.PreviewRowsLimit
	}
	if limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	sheet, _ := cmd.Flags().GetString("sheet")
	headerRow, _ := cmd.Flags().GetInt("header-row")

	tbl, err := loader.LoadFile(path, loader.Options{
		Sheet:     sheet,
		HeaderRow: headerRow,
		MaxRows:   limit,
	})
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}

	if tbl.RowCount() == 0 {
		fmt.Fprintf(output, "No data rows in %s\n", path)
		return nil
	}

	renderGrid(output, tbl)

	fmt.Fprintf(output, "\n%d row(s)", tbl.RowCount())
	if tbl.Sheet != "" {
		fmt.Fprintf(output, " from sheet %q", tbl.Sheet)
	}
	if tbl.RowCount() == limit {
		fmt.Fprintf(output, " (limit %d reached)", limit)
	}
	fmt.Fprintln(output)

	return nil
}

// renderGrid prints the table as an aligned text grid. Column widths
// count runes, not bytes, so accented names line up.
func renderGrid(output io.Writer, tbl *table.Table) {
	widths := make([]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range tbl.Rows {
		for i := range tbl.Columns {
			if n := utf8.RuneCountInString(row.CellAt(i).Value()); n > widths[i] {
				widths[i] = n
			}
		}
	}

	cells := make([]string, len(tbl.Columns))
	for i, col := range tbl.Columns {
		cells[i] = padCell(col, widths[i])
	}
	header := strings.TrimRight(strings.Join(cells, "  "), " ")
	fmt.Fprintln(output, header)

	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	fmt.Fprintln(output, strings.Repeat("-", total))

	for _, row := range tbl.Rows {
		for i := range tbl.Columns {
			cells[i] = padCell(row.CellAt(i).Value(), widths[i])
		}
		fmt.Fprintln(output, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func padCell(value string, width int) string {
	if n := width - utf8.RuneCountInString(value); n > 0 {
		return value + strings.Repeat(" ", n)
	}
	return value
}
