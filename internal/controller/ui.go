// Package controller provides output adapters for displaying scan results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// FileStat holds per-file aggregate counts for the list view.
type FileStat struct {
	Path   string
	Await  int
	Async  int
	Failed bool
}

// UI defines the interface for presenting scan progress and results.
// Implementations can use different output methods (plain text, TUI).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for the UI to finish (user closes it)

	// DisplayScanRoot echoes the resolved scan root before any results.
	DisplayScanRoot(ctx context.Context, root m.Path)

	// DisplayResult surfaces one file's outcome: one line per match, or a
	// single ERROR line for a failed file. Lines for a file always appear
	// together.
	DisplayResult(ctx context.Context, result m.FileResult)

	// DisplaySummary surfaces the final tally once the stream is exhausted.
	DisplaySummary(ctx context.Context, tally m.RunTally)

	// DisplayFileStats renders the per-file count table for the list command.
	DisplayFileStats(ctx context.Context, stats []FileStat, tally m.RunTally)
}

// NewUI creates a UI based on whether TTY mode is requested. When useTTY is
// true it returns the Bubble Tea TUI, otherwise the plain-text SimpleUI whose
// output format is the tool's stable contract.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is an interactive terminal. Returns false
// when output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
