package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dquiroga/cargogen/internal/export"
	"github.com/dquiroga/cargogen/internal/loader"
	"github.com/dquiroga/cargogen/internal/pdf"
	"github.com/spf13/cobra"
)

// NewExportCommand creates and returns the export subcommand
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a spreadsheet as a normalized workbook or PDF",
		Long: `Load a spreadsheet and write it back out in a clean form: an
.xlsx workbook with a bold header and numeric cells, or a summary
table PDF.

Examples:
  cargogen export stock.csv
  cargogen export pedidos.xlsx --format pdf --out resumen.pdf
  cargogen export pedidos.xlsx --sheet "Plaza Norte" --format pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0])
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("format", "xlsx", "Output format: xlsx or pdf")
	cmd.Flags().String("out", "", "Output path (default: input name with the new extension)")
	cmd.Flags().String("sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().Int("header-row", 0, "Row holding the column names, 1-based (default: 1)")

	return cmd
}

func runExport(cmd *cobra.Command, path string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "xlsx" && format != "pdf" {
		return fmt.Errorf("unsupported format %q (supported: xlsx, pdf)", format)
	}

	sheet, _ := cmd.Flags().GetString("sheet")
	headerRow, _ := cmd.Flags().GetInt("header-row")

	tbl, err := loader.LoadFile(path, loader.Options{
		Sheet:     sheet,
		HeaderRow: headerRow,
	})
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = exportName(path, format)
	}

	switch format {
	case "xlsx":
		err = export.WriteXLSX(tbl, outPath)
	case "pdf":
		err = pdf.WriteTable(tbl, exportTitle(tbl.Sheet, path), outPath)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d row(s) to %s\n", tbl.RowCount(), outPath)
	return nil
}

// exportName derives the default output path from the input name,
// suffixed so an xlsx-to-xlsx export never lands on its own input.
func exportName(path, format string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return stem + "-export." + format
}

// exportTitle picks the PDF heading: the worksheet name when there is
// one, the file name otherwise.
func exportTitle(sheet, path string) string {
	if sheet != "" {
		return sheet
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
