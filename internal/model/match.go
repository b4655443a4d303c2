package model

// Keyword is one of the tracked identifier spellings.
type Keyword string

const (
	// KeywordAwait tracks identifier tokens spelled "await".
	KeywordAwait Keyword = "await"
	// KeywordAsync tracks identifier tokens spelled "async".
	KeywordAsync Keyword = "async"
)

// KeywordFor returns the tracked keyword matching the given identifier text.
// The policy is token-text equality: no attempt is made to distinguish real
// keywords from plain identifiers sharing the spelling.
func KeywordFor(text string) (Keyword, bool) {
	switch text {
	case string(KeywordAwait):
		return KeywordAwait, true
	case string(KeywordAsync):
		return KeywordAsync, true
	}

	return "", false
}

// Match records one occurrence of a tracked keyword token.
type Match struct {
	Keyword Keyword `yaml:"keyword"`
	File    Path    `yaml:"file"`
	Line    int     `yaml:"line"`
	Column  int     `yaml:"column"`
}

// Position returns the match location in the shared rendering convention.
func (m Match) Position() Position {
	return Position{Line: m.Line, Column: m.Column}
}
