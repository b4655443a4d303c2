package domain

import (
	"fmt"
	"log/slog"

	"awaitscan.dev/pkg/awaitscan/internal/adapter"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// FileScanner tokenizes one source file and extracts keyword matches.
type FileScanner interface {
	// Scan reads and tokenizes the file. On success the result carries zero
	// or more matches; on a tokenization failure it carries exactly one
	// failure record and no matches, even if matches were seen before the
	// failure. The returned error is reserved for I/O faults reading the
	// file, which are fatal for the run.
	Scan(file m.SourceFile) (m.FileResult, error)
}

type fileScanner struct {
	fs        adapter.SourceFSAdapter
	tokenizer adapter.TokenizerAdapter
}

// NewFileScanner creates a FileScanner using the given filesystem and
// tokenizer adapters.
func NewFileScanner(fs adapter.SourceFSAdapter, tokenizer adapter.TokenizerAdapter) FileScanner {
	return &fileScanner{fs: fs, tokenizer: tokenizer}
}

func (s *fileScanner) Scan(file m.SourceFile) (m.FileResult, error) {
	src, err := s.fs.ReadFile(file.Path)
	if err != nil {
		return m.FileResult{}, fmt.Errorf("read %s: %w", file.Path, err)
	}

	result := m.FileResult{File: file.Path}
	stream := s.tokenizer.Tokenize(file.Path, src)

	// Matches stay buffered until the stream finishes: a file that fails
	// mid-way must not contribute partial results.
	for {
		tok, ok := stream.Next()
		if !ok {
			break
		}

		if tok.Kind != m.KindName {
			continue
		}

		keyword, ok := m.KeywordFor(tok.Text)
		if !ok {
			continue
		}

		result.Matches = append(result.Matches, m.Match{
			Keyword: keyword,
			File:    file.Path,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}

	if failure := stream.Err(); failure != nil {
		slog.Debug("tokenization failed", "path", file.Path, "kind", failure.Kind, "message", failure.Message)

		result.Matches = nil
		result.Failure = failure

		return result, nil
	}

	slog.Debug("scanned source", "path", file.Path, "matches", len(result.Matches))

	return result, nil
}
