package cmd

import (
	"fmt"
	"io"

	"github.com/dquiroga/cargogen/internal/logger"
	"github.com/dquiroga/cargogen/internal/settings"
	"github.com/spf13/cobra"
)

// loadSettings resolves the settings file path from the persistent
// --settings flag and loads it. A malformed file is downgraded to a
// warning on stderr; the returned settings are always usable.
func loadSettings(cmd *cobra.Command) (*settings.Settings, string) {
	path, _ := cmd.Flags().GetString("settings")
	if path == "" {
		path = settings.DefaultPath()
	}

	s, err := settings.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
	}
	return s, path
}

// addWorkFlags registers the logging flags for the generate command.
func addWorkFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().String("log-file", "", "Append the session log to this file (default: settings log_file)")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
}

// buildLogger constructs the console+file multi-logger for a work
// command. The file target comes from --log-file, falling back to the
// settings log_file key; an empty target disables file logging. The
// returned closer flushes the file logger and must be called before
// the command exits.
func buildLogger(cmd *cobra.Command, s *settings.Settings, console io.Writer) (logger.Logger, func(), error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	noColor, _ := cmd.Flags().GetBool("no-color")

	consoleLog := logger.NewConsoleLoggerWithColor(console, logLevel, !noColor)

	logFile, _ := cmd.Flags().GetString("log-file")
	if !cmd.Flags().Changed("log-file") {
		logFile = s.LogFile
	}
	if logFile == "" {
		return consoleLog, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(logFile, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	multiLog := logger.NewMultiLogger(consoleLog, fileLog)
	return multiLog, func() { _ = fileLog.Close() }, nil
}

// useColor reports whether a work command should color its summary
// output, honoring --no-color.
func useColor(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor
}
