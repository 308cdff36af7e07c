package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dquiroga/cargogen/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema parent command with its
// list and show subcommands
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the available validation schemas",
		Long: `Inspect the available validation schemas.

Built-in schemas cover the uniform order workbook (cargo) and simple
stock lists (stock); any command taking --schema also accepts a path
to a YAML schema file.

Examples:
  cargogen schema list
  cargogen schema show cargo
  cargogen schema show ./esquemas/tallas.yaml`,
	}

	cmd.AddCommand(newSchemaListCommand())
	cmd.AddCommand(newSchemaShowCommand())

	return cmd
}

func newSchemaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range schema.BuiltinNames() {
				s, _ := schema.Builtin(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s  (%d columns)\n", name, len(s.Columns))
			}
			return nil
		},
		SilenceUsage: true,
	}
}

func newSchemaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name-or-path>",
		Short: "Show a schema's columns and constraints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.Resolve(args[0])
			if err != nil {
				return err
			}

			output := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintf(output, "Schema %s\n", s.Name)
			for _, col := range s.Columns {
				fmt.Fprintf(output, "  %s\n", describeColumn(col))
			}
			return nil
		},
		SilenceUsage: true,
	}
}

// describeColumn renders one schema column as a single line, e.g.
// "dni    string, required" or "camisa number, min 0"
func describeColumn(col schema.Column) string {
	parts := []string{col.Type}
	if col.Required {
		parts = append(parts, "required")
	}
	if col.NonEmpty {
		parts = append(parts, "non-empty")
	}
	if col.Min != nil {
		parts = append(parts, "min "+strconv.FormatFloat(*col.Min, 'f', -1, 64))
	}
	if col.Max != nil {
		parts = append(parts, "max "+strconv.FormatFloat(*col.Max, 'f', -1, 64))
	}
	return fmt.Sprintf("%-16s %s", col.Name, strings.Join(parts, ", "))
}
