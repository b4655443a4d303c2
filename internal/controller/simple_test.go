package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayScanRoot(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplayScanRoot(context.Background(), "/src/project")

	require.Equal(t, "Directory: /src/project\n\n", buf.String())
}

func TestSimpleUI_DisplayResult(t *testing.T) {
	t.Run("matches one line each", func(t *testing.T) {
		ui, buf := newBufferedUI()

		ui.DisplayResult(context.Background(), m.FileResult{
			File: "/src/a.go",
			Matches: []m.Match{
				{Keyword: m.KeywordAwait, File: "/src/a.go", Line: 3, Column: 5},
				{Keyword: m.KeywordAsync, File: "/src/a.go", Line: 7, Column: 2},
			},
		})

		want := "await\t/src/a.go: (3, 5)\nasync\t/src/a.go: (7, 2)\n"
		require.Equal(t, want, buf.String())
	})

	t.Run("failure yields a single error line", func(t *testing.T) {
		ui, buf := newBufferedUI()

		ui.DisplayResult(context.Background(), m.FileResult{
			File: "/src/bad.go",
			Failure: &m.FailureRecord{
				File:    "/src/bad.go",
				Kind:    m.FailureEncoding,
				Message: "invalid UTF-8 encoding",
			},
		})

		require.Equal(t, "ERROR /src/bad.go invalid UTF-8 encoding\n", buf.String())
	})

	t.Run("clean file prints nothing", func(t *testing.T) {
		ui, buf := newBufferedUI()

		ui.DisplayResult(context.Background(), m.FileResult{File: "/src/quiet.go"})

		require.Empty(t, buf.String())
	})
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplaySummary(context.Background(), m.RunTally{Errors: 2, Await: 5, Async: 3})

	want := "\n# of errors: 2\n# of `await`: 5\n# of `async`: 3\n"
	require.Equal(t, want, buf.String())
}

func TestSimpleUI_DisplayFileStats(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplayFileStats(context.Background(), []FileStat{
		{Path: "b.go", Await: 0, Async: 2},
		{Path: "a.go", Await: 1, Async: 0},
		{Path: "bad.go", Failed: true},
	}, m.RunTally{Errors: 1, Await: 1, Async: 2})

	out := buf.String()
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "b.go")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "Total Files 3")

	// Rows are sorted by path regardless of input order.
	require.Less(t, bytes.Index([]byte(out), []byte("a.go")), bytes.Index([]byte(out), []byte("b.go")))
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, buf := newBufferedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayScanRoot(ctx, "/src")
	ui.DisplaySummary(ctx, m.RunTally{})

	require.Empty(t, buf.String())
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer

	require.False(t, IsTTY(&buf))
}
