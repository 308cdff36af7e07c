package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dquiroga/cargogen/internal/display"
	"github.com/dquiroga/cargogen/internal/docx"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewTemplatesCommand creates and returns the templates subcommand
func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates [dir]",
		Short: "List a folder's templates and their placeholders",
		Long: `Scan a folder for .docx templates and print each one with the
{{placeholders}} it expects. Word ~$ lock files are ignored and
reported as a warning when present.

Examples:
  cargogen templates
  cargogen templates ./plantillas`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runTemplates(cmd, dir)
		},
		SilenceUsage: true,
	}

	return cmd
}

func runTemplates(cmd *cobra.Command, dir string) error {
	output := cmd.OutOrStdout()
	cfg, _ := loadSettings(cmd)
	if dir == "" {
		dir = cfg.TemplatesDir
	}

	files, err := display.FindTemplateFiles(dir)
	if err != nil {
		return err
	}

	if locks, err := display.FindLockFiles(dir); err == nil && len(locks) > 0 {
		display.WarnLockedTemplates(locks).Display(output)
	}

	if len(files) == 0 {
		fmt.Fprintf(output, "No templates found in %s\n", dir)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(output, "Templates in %s:\n", dir)
	for _, name := range files {
		fmt.Fprintf(output, "\n  %s\n", name)

		placeholders, err := docx.Placeholders(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(output, "    ✗ %v\n", err)
			continue
		}
		if len(placeholders) == 0 {
			fmt.Fprintf(output, "    (no placeholders)\n")
			continue
		}
		for _, ph := range placeholders {
			fmt.Fprintf(output, "    {{%s}}\n", ph)
		}
	}

	return nil
}
