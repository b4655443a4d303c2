package model

// FailureKind classifies why a file could not be tokenized.
type FailureKind string

const (
	// FailureSyntax marks files whose content cannot be decomposed into
	// valid tokens.
	FailureSyntax FailureKind = "syntax"
	// FailureEncoding marks files whose bytes are not valid text under the
	// assumed encoding (UTF-8).
	FailureEncoding FailureKind = "encoding"
)

// FailureRecord records a recoverable per-file tokenization failure. A file
// that yields a FailureRecord contributes no matches to the run.
type FailureRecord struct {
	File    Path        `yaml:"file"`
	Kind    FailureKind `yaml:"kind"`
	Message string      `yaml:"message"`
}
