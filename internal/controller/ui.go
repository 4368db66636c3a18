// Package controller provides output adapters for displaying coverage scan
// results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

// UI defines the interface for presenting scan results. Implementations can
// use different output methods (plain tables, interactive TUI).
type UI interface {
	// ScanStarted announces the scan before any work happens.
	ScanStarted(ctx context.Context, root m.Path)

	// DisplaySummary prints the aggregate report after a scan.
	DisplaySummary(ctx context.Context, report m.ProjectReport) error

	// DisplayGate reports the CI decision.
	DisplayGate(ctx context.Context, pass bool)

	// DisplayReport shows a previously generated report, interactively when
	// the terminal allows it.
	DisplayReport(ctx context.Context, report m.ProjectReport) error
}

// NewUI selects the best UI for the writer: interactive paging on a real
// terminal, plain tables everywhere else.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	simple := NewSimpleUI(cmd)
	if interactive {
		return NewTUI(simple, cmd.OutOrStdout())
	}

	return simple
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
