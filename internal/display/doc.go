// Package display provides terminal UI utilities for displaying progress, warnings, and status messages.
//
// This package centralizes terminal output formatting, ANSI color codes, and user-facing
// display logic for the cargogen CLI. It provides three main categories of functionality:
//
// # Progress Indicators
//
// Use ProgressIndicator when generating across multiple worksheets:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(sheets))
//	progress.Start()
//	for _, sheet := range sheets {
//	    progress.Step(sheet)
//	    // ... generate documents for the sheet ...
//	}
//	progress.Complete()
//
// For single file operations:
//
//	display.DisplayLoading(os.Stdout, filename)
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Column not in schema",
//	    Message:    "Values pass through to placeholders unchecked",
//	    Files:      []string{"stock.xlsx"},
//	    Suggestion: "Add the column to the schema or rename the header",
//	}
//	warning.Display(os.Stderr)
//
// Or use the convenience factory for Word lock files:
//
//	locks, _ := display.FindLockFiles(dir)
//	if len(locks) > 0 {
//	    display.WarnLockedTemplates(locks).Display(os.Stdout)
//	}
//
// # File Utilities
//
// Check if a filename is a usable template (e.g., "CARGO UNIFORMES.docx"):
//
//	if display.IsTemplateFile(filename) {
//	    // Offer it for generation
//	}
//
// Scan a directory for templates:
//
//	templates, err := display.FindTemplateFiles(directory)
//	if err != nil {
//	    // Handle error
//	}
//
// # ANSI Colors
//
// The package uses ANSI escape codes for terminal colors:
//   - Cyan (\x1b[36m) for progress steps
//   - Green (\x1b[32m) for success messages
//   - Yellow (\x1b[33m) for warnings
//   - Reset (\x1b[0m) after each colored section
//
// All functions accept io.Writer interfaces for testability and flexibility.
package display
