// Package console holds the terminal building blocks the menus are made of:
// prompts, menu choosers, styled output and the per-action error boundary.
package console

import (
	"io"

	"go.uber.org/zap"
)

// UI bundles everything a workflow needs to talk to the user.
type UI struct {
	Prompter *Prompter
	Chooser  Chooser
	Printer  *Printer
	Boundary *Boundary
}

// New wires a UI over in and out. With interactive set, menus are driven by
// the arrow-key chooser, otherwise by numbered lists.
func New(in io.Reader, out io.Writer, interactive bool, logger *zap.Logger) *UI {
	printer := NewPrinter(out)
	prompter := NewPrompter(in, out)

	var chooser Chooser = NewLineChooser(prompter, printer)
	if interactive {
		chooser = NewTeaChooser(in, out)
	}
	return &UI{
		Prompter: prompter,
		Chooser:  chooser,
		Printer:  printer,
		Boundary: NewBoundary(printer, logger),
	}
}
