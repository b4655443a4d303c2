package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// maxVisibleLines bounds how many recent report lines the TUI keeps on
// screen while a scan is running.
const maxVisibleLines = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	awaitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	asyncStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

type rootMsg m.Path

type resultMsg m.FileResult

type summaryMsg m.RunTally

// Start launches the Bubble Tea program in the background.
func (p *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newScanModel()

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	p.program = tea.NewProgram(model, tea.WithOutput(p.output))

	go func() {
		defer close(p.done)

		if _, err := p.program.Run(); err != nil {
			fmt.Fprintf(p.output, "display error: %v\n", err)
		}
	}()

	return nil
}

// Close shuts the program down if it is still running.
func (p *TUI) Close(ctx context.Context) {
	if p.program == nil {
		return
	}

	p.once.Do(func() {
		p.program.Quit()
	})

	if ctx.Err() != nil {
		return
	}
}

// Wait blocks until the program has exited.
func (p *TUI) Wait(ctx context.Context) {
	if p.program == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-p.done:
	}
}

// DisplayScanRoot feeds the resolved root into the running program.
func (p *TUI) DisplayScanRoot(ctx context.Context, root m.Path) {
	p.send(ctx, rootMsg(root))
}

// DisplayResult feeds one file's outcome into the running program.
func (p *TUI) DisplayResult(ctx context.Context, result m.FileResult) {
	p.send(ctx, resultMsg(result))
}

// DisplaySummary feeds the final tally into the program, which renders it and
// quits.
func (p *TUI) DisplaySummary(ctx context.Context, tally m.RunTally) {
	p.send(ctx, summaryMsg(tally))
}

// DisplayFileStats renders the per-file table directly; the list view is
// static, so there is nothing to animate.
func (p *TUI) DisplayFileStats(ctx context.Context, stats []FileStat, tally m.RunTally) {
	if err := ctx.Err(); err != nil {
		return
	}

	fmt.Fprintf(p.output, "\n%s", renderStatsTable(stats, tally))
}

func (p *TUI) send(ctx context.Context, msg tea.Msg) {
	if p.program == nil || ctx.Err() != nil {
		return
	}

	p.program.Send(msg)
}

// scanModel is the Bubble Tea model for a running scan.
type scanModel struct {
	spinner spinner.Model
	root    string
	lines   []string
	tally   m.RunTally
	scanned int
	done    bool
	width   int
	height  int
}

func newScanModel() scanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return scanModel{spinner: sp}
}

func (sm scanModel) Init() tea.Cmd {
	return sm.spinner.Tick
}

func (sm scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return sm, tea.Quit
		}

		return sm, nil

	case tea.WindowSizeMsg:
		sm.width = msg.Width
		sm.height = msg.Height

		return sm, nil

	case rootMsg:
		sm.root = string(msg)
		return sm, nil

	case resultMsg:
		sm.applyResult(m.FileResult(msg))
		return sm, nil

	case summaryMsg:
		sm.tally = m.RunTally(msg)
		sm.done = true

		return sm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		sm.spinner, cmd = sm.spinner.Update(msg)

		return sm, cmd
	}

	return sm, nil
}

func (sm *scanModel) applyResult(result m.FileResult) {
	sm.scanned++

	if result.Failed() {
		sm.tally.AddFailure()
		sm.pushLine(errorStyle.Render(fmt.Sprintf("ERROR %s %s", result.Failure.File, result.Failure.Message)))

		return
	}

	for _, match := range result.Matches {
		sm.tally.AddMatch(match.Keyword)

		style := awaitStyle
		if match.Keyword == m.KeywordAsync {
			style = asyncStyle
		}

		sm.pushLine(style.Render(fmt.Sprintf("%s\t%s: %s", match.Keyword, match.File, match.Position())))
	}
}

func (sm *scanModel) pushLine(line string) {
	sm.lines = append(sm.lines, line)
	if len(sm.lines) > maxVisibleLines {
		sm.lines = sm.lines[len(sm.lines)-maxVisibleLines:]
	}
}

func (sm scanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("awaitscan"))

	if sm.root != "" {
		fmt.Fprintf(&b, " %s", sm.root)
	}

	b.WriteString("\n\n")

	for _, line := range sm.lines {
		b.WriteString("  " + line + "\n")
	}

	if len(sm.lines) > 0 {
		b.WriteString("\n")
	}

	if sm.done {
		b.WriteString(summaryStyle.Render(fmt.Sprintf(
			"scanned %d file(s) | errors %d | await %d | async %d",
			sm.scanned, sm.tally.Errors, sm.tally.Await, sm.tally.Async)))
		b.WriteString("\n")

		return b.String()
	}

	fmt.Fprintf(&b, "%s scanning... %d file(s) | errors %d | await %d | async %d\n",
		sm.spinner.View(), sm.scanned, sm.tally.Errors, sm.tally.Await, sm.tally.Async)
	b.WriteString(summaryStyle.Render("  q: quit"))
	b.WriteString("\n")

	return b.String()
}
