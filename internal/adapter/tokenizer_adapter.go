package adapter

import (
	"go/scanner"
	"go/token"
	"strings"
	"unicode/utf8"

	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// TokenizerAdapter encapsulates the lexical scanning of a single source file
// so the domain layer can focus on match policy while delegating grammar
// details to an infrastructure component.
type TokenizerAdapter interface {
	// Tokenize starts a single-pass token stream over src. The stream is
	// lazy: tokens are produced one at a time and the full file is never
	// materialized as a token slice by the adapter itself.
	Tokenize(filename m.Path, src []byte) TokenStream
}

// TokenStream is a non-restartable pull cursor over a file's tokens, in
// source order.
type TokenStream interface {
	// Next returns the next token. It returns false when the stream is
	// exhausted or has failed; check Err to distinguish the two.
	Next() (m.Token, bool)

	// Err returns the failure that terminated the stream, or nil if the
	// stream completed (or is still running) cleanly.
	Err() *m.FailureRecord
}

// GoTokenizerAdapter is the concrete TokenizerAdapter backed by go/scanner.
type GoTokenizerAdapter struct{}

// NewGoTokenizerAdapter constructs a GoTokenizerAdapter.
func NewGoTokenizerAdapter() *GoTokenizerAdapter {
	return &GoTokenizerAdapter{}
}

// Tokenize prepares a token stream for the given file contents.
//
// Invalid UTF-8 is rejected up front as an encoding failure so the scanner
// only ever sees decodable text. Everything the scanner itself rejects is a
// syntax failure, except for the scanner's own UTF-8 diagnostics which are
// folded into the encoding kind for consistency.
func (a *GoTokenizerAdapter) Tokenize(filename m.Path, src []byte) TokenStream {
	if !utf8.Valid(src) {
		return &goTokenStream{
			failure: &m.FailureRecord{
				File:    filename,
				Kind:    m.FailureEncoding,
				Message: "invalid UTF-8 encoding",
			},
		}
	}

	stream := &goTokenStream{
		file: filename,
		fset: token.NewFileSet(),
	}

	tokenFile := stream.fset.AddFile(string(filename), -1, len(src))
	stream.scanner.Init(tokenFile, src, stream.recordError, 0)

	return stream
}

// goTokenStream adapts scanner.Scanner to the TokenStream contract. The
// scanner reports errors through a callback and keeps going; the stream
// instead stops at the first error, because a file that fails to tokenize
// contributes no results at all.
type goTokenStream struct {
	file    m.Path
	fset    *token.FileSet
	scanner scanner.Scanner
	failure *m.FailureRecord
	done    bool
}

func (s *goTokenStream) Next() (m.Token, bool) {
	if s.done || s.failure != nil {
		return m.Token{}, false
	}

	pos, tok, lit := s.scanner.Scan()
	if s.failure != nil {
		return m.Token{}, false
	}

	if tok == token.EOF {
		s.done = true
		return m.Token{}, false
	}

	position := s.fset.Position(pos)

	kind := m.KindOther
	if tok == token.IDENT {
		kind = m.KindName
	}

	text := lit
	if text == "" {
		text = tok.String()
	}

	return m.Token{
		Kind: kind,
		Text: text,
		Pos:  m.Position{Line: position.Line, Column: position.Column},
	}, true
}

func (s *goTokenStream) Err() *m.FailureRecord {
	return s.failure
}

// recordError is the scanner's error handler. Only the first error is kept;
// later diagnostics from the same broken file add no information.
func (s *goTokenStream) recordError(pos token.Position, msg string) {
	if s.failure != nil {
		return
	}

	kind := m.FailureSyntax
	if strings.Contains(msg, "UTF-8") || strings.Contains(msg, "byte order mark") {
		kind = m.FailureEncoding
	}

	s.failure = &m.FailureRecord{
		File:    s.file,
		Kind:    kind,
		Message: formatScanError(pos, msg),
	}
}

func formatScanError(pos token.Position, msg string) string {
	if !pos.IsValid() {
		return msg
	}

	return msg + " at " + m.Position{Line: pos.Line, Column: pos.Column}.String()
}
