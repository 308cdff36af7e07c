package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for cargogen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cargogen",
		Short: "Generate Word documents from spreadsheet data",
		Long: `Cargogen validates spreadsheet data against a schema and fills
Word templates with it, one document per row.

It reads .xlsx and .csv files, checks every row against a built-in or
user-supplied schema, and substitutes {{placeholder}} markers in .docx
templates, writing the results into a timestamped run folder together
with a report of what was generated and what was skipped.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("settings", "", "Path to settings file (default: config.json beside the executable)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewPreviewCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewTemplatesCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewSchemaCommand())

	return cmd
}
