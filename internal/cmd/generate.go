package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dquiroga/cargogen/internal/display"
	"github.com/dquiroga/cargogen/internal/generate"
	"github.com/dquiroga/cargogen/internal/loader"
	"github.com/dquiroga/cargogen/internal/logger"
	"github.com/dquiroga/cargogen/internal/schema"
	"github.com/dquiroga/cargogen/internal/settings"
	"github.com/spf13/cobra"
)

// cargoMetadataCells are the fixed cells of the uniform order worksheet
// read into Table.Meta and exposed as placeholders.
var cargoMetadataCells = map[string]string{
	"fecha_solicitud": "C3",
	"tienda":          "C4",
	"administrador":   "C5",
}

// NewGenerateCommand creates and returns the generate subcommand
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate documents from spreadsheet rows",
		Long: `Validate a spreadsheet and fill every selected template once per
valid row, writing the documents into a timestamped run folder under
the destination path together with a run report. Invalid rows are
skipped and listed in the report.

Examples:
  cargogen generate pedidos.xlsx
  cargogen generate pedidos.xlsx --sheet "Plaza Norte" --sheet "Open Plaza"
  cargogen generate pedidos.xlsx --all-sheets
  cargogen generate stock.csv --schema stock --template entrega.docx
  cargogen generate pedidos.xlsx --combine --dry-run

Exit code: 0 on success, 1 on any aborted run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0])
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringArray("template", nil, "Template .docx to fill (repeatable, default: enabled templates from settings)")
	cmd.Flags().String("dest", "", "Folder run output is written under (default: settings destination_path)")
	cmd.Flags().String("schema", "cargo", "Schema name (cargo, stock) or path to a YAML schema file")
	cmd.Flags().StringArray("sheet", nil, "Worksheet to read (repeatable, default: first sheet)")
	cmd.Flags().Bool("all-sheets", false, "Process every worksheet of the workbook")
	cmd.Flags().Bool("combine", false, "One document per template per worksheet instead of per row")
	cmd.Flags().Bool("overwrite", false, "Replace same-named outputs instead of versioning them")
	cmd.Flags().Bool("dry-run", false, "Resolve and report without writing anything")
	cmd.Flags().StringArray("name-column", nil, "Column naming the output files (repeatable, default: first required text column)")
	addWorkFlags(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, path string) error {
	output := cmd.OutOrStdout()
	cfg, _ := loadSettings(cmd)

	schemaFlag, _ := cmd.Flags().GetString("schema")
	s, err := schema.Resolve(schemaFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve schema: %w", err)
	}

	templates, _ := cmd.Flags().GetStringArray("template")
	if len(templates) == 0 {
		templates = enabledTemplates(cfg)
	}
	if len(templates) == 0 {
		return fmt.Errorf("no templates selected: pass --template or enable one with 'cargogen config set'")
	}

	dest, _ := cmd.Flags().GetString("dest")
	if dest == "" {
		dest = cfg.DestinationPath
	}

	opts := generate.Options{
		Dest:      dest,
		Templates: templates,
	}
	opts.NameColumns, _ = cmd.Flags().GetStringArray("name-column")
	opts.Combine, _ = cmd.Flags().GetBool("combine")
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

	log, closeLog, err := buildLogger(cmd, cfg, output)
	if err != nil {
		return err
	}
	defer closeLog()

	if locks := templateLockFiles(templates); len(locks) > 0 {
		display.WarnLockedTemplates(locks).Display(output)
	}

	sheets, err := selectSheets(cmd, path)
	if err != nil {
		return err
	}

	display.DisplayLoading(output, path)

	started := time.Now()
	var progress *display.ProgressIndicator
	if len(sheets) > 1 {
		progress = display.NewProgressIndicator(output, len(sheets))
		progress.Start()
	}

	totalDocs := 0
	for _, sheet := range sheets {
		if progress != nil {
			progress.Step(sheet)
		}

		tbl, err := loader.LoadFile(path, loader.Options{
			Sheet:    sheet,
			Metadata: metadataCells(s, path),
		})
		if err != nil {
			return fmt.Errorf("load error: %w", err)
		}

		res, err := generate.Run(tbl, s, opts, log)
		if err != nil {
			printRunFailures(output, res)
			return err
		}

		totalDocs += len(res.Documents)
		printRunSummary(output, res, useColor(cmd))
	}

	if progress != nil {
		progress.Complete()
	}

	verb := "Generated"
	if opts.DryRun {
		verb = "Planned"
	}
	fmt.Fprintf(output, "\n✓ %s %d document(s) in %s\n", verb, totalDocs, logger.FormatDuration(time.Since(started)))
	return nil
}

// selectSheets resolves which worksheets to process: every sheet with
// --all-sheets, the repeated --sheet values, or a single default load.
func selectSheets(cmd *cobra.Command, path string) ([]string, error) {
	allSheets, _ := cmd.Flags().GetBool("all-sheets")
	if allSheets {
		names, err := loader.SheetNames(path)
		if err != nil {
			return nil, err
		}
		return names, nil
	}

	sheets, _ := cmd.Flags().GetStringArray("sheet")
	if len(sheets) == 0 {
		sheets = []string{""}
	}
	return sheets, nil
}

// enabledTemplates returns the templates switched on in settings, cargo
// first, then the discount authorization.
func enabledTemplates(cfg *settings.Settings) []string {
	var templates []string
	if cfg.CargoEnabled && cfg.CargoTemplatePath != "" {
		templates = append(templates, cfg.CargoTemplatePath)
	}
	if cfg.AutorizacionEnabled && cfg.AutorizacionTemplatePath != "" {
		templates = append(templates, cfg.AutorizacionTemplatePath)
	}
	return templates
}

// metadataCells returns the worksheet cells to read into Table.Meta.
// Only the cargo workbook layout defines fixed metadata cells, and only
// Excel input has a worksheet to read them from.
func metadataCells(s *schema.Schema, path string) map[string]string {
	if s.Name != "cargo" || loader.DetectFormat(path) != loader.FormatXLSX {
		return nil
	}
	return cargoMetadataCells
}

// templateLockFiles collects the Word ~$ lock files sitting in the
// selected templates' folders, a sign a template is open in Word.
func templateLockFiles(templates []string) []string {
	seen := make(map[string]bool)
	var locks []string
	for _, tpl := range templates {
		dir := filepath.Dir(tpl)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		found, err := display.FindLockFiles(dir)
		if err != nil {
			continue
		}
		locks = append(locks, found...)
	}
	return locks
}

// printRunSummary prints one run's folder and counts
func printRunSummary(output io.Writer, res *generate.Result, colored bool) {
	skipped := 0
	if res.Report != nil {
		skipped = len(res.Report.Rows)
	}

	if res.DryRun {
		fmt.Fprintf(output, "✓ Dry run, would write to %s\n", res.RunDir)
	} else {
		fmt.Fprintf(output, "✓ Run folder: %s\n", res.RunDir)
	}
	fmt.Fprintf(output, "  %s\n", logger.FormatRunCounts(len(res.Documents), skipped, 0, colored))

	for _, doc := range res.Documents {
		fmt.Fprintf(output, "  %s\n", filepath.Base(doc.Path))
	}
}

// printRunFailures lists the validation failures of an aborted run so
// the user sees them without digging for a report that was never written
func printRunFailures(output io.Writer, res *generate.Result) {
	if res == nil || res.Report == nil || res.Report.Valid() {
		return
	}

	fmt.Fprintf(output, "\n✗ Validation failed\n")
	for _, msg := range res.Report.Messages() {
		fmt.Fprintf(output, "  ✗ %s\n", msg)
	}
}
