package cmd

import (
	"fmt"
	"os"

	"github.com/dquiroga/cargogen/internal/settings"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config parent command with its
// show, set and path subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the settings file",
		Long: `Inspect and edit the settings file.

Settings live in a flat JSON file (config.json beside the executable,
or the path in the CARGOGEN_CONFIG environment variable). A missing
file means defaults; the file is created on the first 'config set'.

Examples:
  cargogen config show
  cargogen config set destination_path /srv/cargas
  cargogen config set autorizacion_enabled false
  cargogen config path`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every setting and its current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadSettings(cmd)

			keys := settings.Keys()
			width := 0
			for _, key := range keys {
				if len(key) > width {
					width = len(key)
				}
			}
			for _, key := range keys {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, key, value)
			}
			return nil
		},
		SilenceUsage: true,
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path := loadSettings(cmd)

			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}

			value, _ := cfg.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], value)
			return nil
		},
		SilenceUsage: true,
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("settings")
			if path == "" {
				path = settings.DefaultPath()
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "(not created yet, defaults in effect)")
			}
			return nil
		},
		SilenceUsage: true,
	}
}
