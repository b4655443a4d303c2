// Package domain implements the scan pipeline: tree walking, per-file
// tokenization and match filtering, and run aggregation.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"awaitscan.dev/pkg/awaitscan/internal/adapter"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// SourceStreamer enumerates source files under a scan root.
type SourceStreamer interface {
	// Stream walks the tree rooted at root and sends every file whose name
	// ends in the recognized source suffix. Traversal order across siblings
	// is whatever the filesystem yields; callers must not rely on it.
	//
	// The source channel closes when the walk finishes or ctx is cancelled.
	// The error channel receives at most one error and then closes; a
	// directory that cannot be enumerated is fatal for the whole run.
	Stream(ctx context.Context, root m.Path, exclude []string) (<-chan m.SourceFile, <-chan error)
}

type sourceStreamer struct {
	fs adapter.SourceFSAdapter
}

// NewSourceStreamer creates a SourceStreamer backed by the given filesystem
// adapter.
func NewSourceStreamer(fs adapter.SourceFSAdapter) SourceStreamer {
	return &sourceStreamer{fs: fs}
}

func (s *sourceStreamer) Stream(ctx context.Context, root m.Path, exclude []string) (<-chan m.SourceFile, <-chan error) {
	sources := make(chan m.SourceFile)
	errs := make(chan error, 1)

	go func() {
		defer close(sources)
		defer close(errs)

		patterns, err := compileExcludes(exclude)
		if err != nil {
			errs <- err
			return
		}

		if _, err := s.fs.FileInfo(root); err != nil {
			errs <- fmt.Errorf("root path error: %w", err)
			return
		}

		slog.Debug("starting source walk", "root", root)

		count := 0

		err = s.fs.Walk(root, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !strings.HasSuffix(path, m.SourceSuffix) {
				return nil
			}

			if excluded(patterns, path) {
				slog.Debug("excluded source", "path", path)
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case sources <- m.SourceFile{Path: m.Path(path)}:
				count++
				return nil
			}
		})
		if err != nil {
			slog.Error("source walk failed", "root", root, "error", err)
			errs <- err

			return
		}

		slog.Debug("source walk finished", "root", root, "count", count)
	}()

	return sources, errs
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, raw := range exclude {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", raw, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func excluded(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
