package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors across console output.
// Green: success, Red: failure, Yellow: warnings, Cyan: labels.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// colorizeLevel renders a log level tag in its conventional color.
func colorizeLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// FormatRunCounts formats a generated/skipped/failed triple for run
// summaries, color-coded when enabled. Zero skipped and failed counts stay
// uncolored so a clean run reads quietly.
func FormatRunCounts(generated, skipped, failed int, useColor bool) string {
	if !useColor {
		return fmt.Sprintf("generated: %d, skipped: %d, failed: %d", generated, skipped, failed)
	}

	scheme := newColorScheme()
	out := fmt.Sprintf("%s: %d", scheme.success.Sprint("generated"), generated)
	if skipped > 0 {
		out += fmt.Sprintf(", %s: %d", scheme.warn.Sprint("skipped"), skipped)
	} else {
		out += fmt.Sprintf(", skipped: %d", skipped)
	}
	if failed > 0 {
		out += fmt.Sprintf(", %s: %d", scheme.fail.Sprint("failed"), failed)
	} else {
		out += fmt.Sprintf(", failed: %d", failed)
	}
	return out
}
