package model

import "fmt"

// TokenKind classifies a lexical unit. Only name-kind tokens are relevant to
// the scan; everything else is lumped together.
type TokenKind int

const (
	// KindOther covers operators, literals, comments and any other
	// non-identifier token.
	KindOther TokenKind = iota
	// KindName marks identifier tokens.
	KindName
)

// Position locates a token within its source file. Line and Column are both
// 1-based, matching go/token conventions. This convention is fixed across
// the implementation and its tests.
type Position struct {
	Line   int
	Column int
}

// String renders the position in the report form "(line, column)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Line, p.Column)
}

// Token is a single lexical unit produced by tokenizing a source file.
// Tokens are transient; they are never persisted.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}
