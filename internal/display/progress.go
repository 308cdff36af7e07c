package display

import (
	"fmt"
	"io"
)

// ProgressIndicator manages multi-step progress display with ANSI colors
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:  w,
		total:   total,
		current: 0,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Processing worksheets:\n")
}

// Step displays progress for the current item: [N/Total] name (cyan)
func (p *ProgressIndicator) Step(name string) {
	p.current++
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.total, name)
}

// Complete displays the success message with a green checkmark
func (p *ProgressIndicator) Complete() {
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Processed %d worksheets\n", p.total)
}

// DisplayLoading shows a simple loading message for a single input file
func DisplayLoading(w io.Writer, filename string) {
	fmt.Fprintf(w, "Loading data from %s...\n", filename)
}
