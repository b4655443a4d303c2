package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// SimpleUI implements UI using the cobra Command's output writer. Its line
// formats are fixed:
//
//	match:   <keyword>\t<filepath>: (<line>, <column>)
//	failure: ERROR <filepath> <message>
//
// followed by a blank line and the three summary counters.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayScanRoot echoes the resolved root followed by a blank line.
func (s *SimpleUI) DisplayScanRoot(ctx context.Context, root m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Directory: %s\n\n", root)
}

// DisplayResult prints one line per match, or the ERROR line for a failure.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if result.Failed() {
		s.printf("ERROR %s %s\n", result.Failure.File, result.Failure.Message)
		return
	}

	for _, match := range result.Matches {
		s.printf("%s\t%s: %s\n", match.Keyword, match.File, match.Position())
	}
}

// DisplaySummary prints a blank line and the three labeled totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, tally m.RunTally) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n")
	s.printf("# of errors: %d\n", tally.Errors)
	s.printf("# of `await`: %d\n", tally.Await)
	s.printf("# of `async`: %d\n", tally.Async)
}

// DisplayFileStats renders per-file counts as a table with a totals footer.
func (s *SimpleUI) DisplayFileStats(ctx context.Context, stats []FileStat, tally m.RunTally) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderStatsTable(stats, tally))
}

func renderStatsTable(stats []FileStat, tally m.RunTally) string {
	sorted := make([]FileStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Await", "Async", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, stat := range sorted {
		status := "ok"
		if stat.Failed {
			status = "error"
		}

		table.Append([]string{
			stat.Path,
			fmt.Sprintf("%d", stat.Await),
			fmt.Sprintf("%d", stat.Async),
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", tally.Await),
		fmt.Sprintf("%d", tally.Async),
		fmt.Sprintf("%d errors", tally.Errors),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
