package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"awaitscan.dev/pkg/awaitscan/internal/adapter"
	"awaitscan.dev/pkg/awaitscan/internal/controller"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
	"awaitscan.dev/pkg/awaitscan/pkg"
)

// ScanArgs carries the parameters for one scan run.
type ScanArgs struct {
	Root    m.Path
	Exclude []string
	Threads int
	Save    bool
	Reports m.Path
}

// Workflow drives the scan pipeline end to end.
type Workflow interface {
	// Scan walks the tree, tokenizes every source file, streams report lines
	// through the UI and returns the final tally. A fresh tally is built per
	// invocation; runs are not restartable.
	Scan(ctx context.Context, args ScanArgs) (m.RunTally, error)

	// List runs the same pipeline but aggregates per-file counts and renders
	// them as a table instead of streaming individual match lines.
	List(ctx context.Context, args ScanArgs) (m.RunTally, error)
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	streamer SourceStreamer
	scanner  FileScanner
	store    adapter.ReportStore
	ui       controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	streamer SourceStreamer,
	scanner FileScanner,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		fs:       fs,
		streamer: streamer,
		scanner:  scanner,
		store:    store,
		ui:       ui,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.RunTally, error) {
	root, err := w.fs.AbsPath(args.Root)
	if err != nil {
		return m.RunTally{}, fmt.Errorf("resolve root: %w", err)
	}

	// Cancelling on early return unblocks any workers still sending results.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.ui.Start(ctx); err != nil {
		return m.RunTally{}, err
	}
	defer w.ui.Close(ctx)

	w.ui.DisplayScanRoot(ctx, root)

	var matchSpill pkg.FileSpill[m.Match]

	var failures []m.FailureRecord

	if args.Save {
		matchSpill, err = pkg.NewFileSpill[m.Match]()
		if err != nil {
			return m.RunTally{}, fmt.Errorf("prepare report buffer: %w", err)
		}

		defer func() { _ = matchSpill.Close() }()
	}

	var tally m.RunTally

	results, wait := w.runPipeline(ctx, root, args)

	for result := range results {
		if result.Failed() {
			tally.AddFailure()

			if args.Save {
				failures = append(failures, *result.Failure)
			}
		} else {
			for _, match := range result.Matches {
				tally.AddMatch(match.Keyword)

				if args.Save {
					if err := matchSpill.Append(match); err != nil {
						return tally, err
					}
				}
			}
		}

		w.ui.DisplayResult(ctx, result)
	}

	if err := wait(); err != nil {
		return tally, err
	}

	w.ui.DisplaySummary(ctx, tally)
	w.ui.Wait(ctx)

	if !args.Save {
		return tally, nil
	}

	path, err := w.saveReport(root, args.Reports, matchSpill, failures, tally)
	if err != nil {
		return tally, err
	}

	slog.Info("saved scan report", "path", path)

	return tally, nil
}

func (w *workflow) List(ctx context.Context, args ScanArgs) (m.RunTally, error) {
	root, err := w.fs.AbsPath(args.Root)
	if err != nil {
		return m.RunTally{}, fmt.Errorf("resolve root: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.ui.Start(ctx); err != nil {
		return m.RunTally{}, err
	}
	defer w.ui.Close(ctx)

	w.ui.DisplayScanRoot(ctx, root)

	var tally m.RunTally

	var stats []controller.FileStat

	results, wait := w.runPipeline(ctx, root, args)

	for result := range results {
		stat := controller.FileStat{Path: w.shortPath(root, result.File)}

		if result.Failed() {
			tally.AddFailure()

			stat.Failed = true
		} else {
			for _, match := range result.Matches {
				tally.AddMatch(match.Keyword)

				switch match.Keyword {
				case m.KeywordAwait:
					stat.Await++
				case m.KeywordAsync:
					stat.Async++
				}
			}
		}

		stats = append(stats, stat)
	}

	if err := wait(); err != nil {
		return tally, err
	}

	w.ui.DisplayFileStats(ctx, stats, tally)
	w.ui.Wait(ctx)

	return tally, nil
}

// runPipeline fans source files out to a fixed pool of scan workers and fans
// per-file results back in on a single channel. Each worker owns its own
// tokenizer pass; the caller's loop over the result channel is the only place
// the tally is touched, so no counter locking is needed.
//
// The returned wait func reports the first fatal error (unreadable file or
// directory) after the result channel closes.
func (w *workflow) runPipeline(ctx context.Context, root m.Path, args ScanArgs) (<-chan m.FileResult, func() error) {
	threads := normalizeThreads(args.Threads)

	group, groupCtx := errgroup.WithContext(ctx)

	sources, walkErrs := w.streamer.Stream(groupCtx, root, args.Exclude)
	results := make(chan m.FileResult, threads)

	slog.Debug("starting scan pipeline", "root", root, "threads", threads)

	for i := 0; i < threads; i++ {
		group.Go(func() error {
			for source := range sources {
				result, err := w.scanner.Scan(source)
				if err != nil {
					return err
				}

				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				case results <- result:
				}
			}

			return nil
		})
	}

	var workerErr error

	go func() {
		workerErr = group.Wait()

		close(results)
	}()

	wait := func() error {
		if workerErr != nil {
			return workerErr
		}

		return <-walkErrs
	}

	return results, wait
}

func (w *workflow) saveReport(root, dir m.Path, matches pkg.FileSpill[m.Match], failures []m.FailureRecord, tally m.RunTally) (m.Path, error) {
	report := m.ScanReport{
		Root:     root,
		Failures: failures,
		Tally:    tally,
	}

	err := matches.Range(func(_ uint64, match m.Match) error {
		report.Matches = append(report.Matches, match)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("collect matches: %w", err)
	}

	return w.store.SaveReport(dir, report)
}

// shortPath renders file relative to root for display; falls back to the full
// path when no relative form exists.
func (w *workflow) shortPath(root, file m.Path) string {
	rel, err := w.fs.RelPath(root, file)
	if err != nil {
		return string(file)
	}

	return string(rel)
}

func normalizeThreads(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}
