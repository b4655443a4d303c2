package model

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"origin", Position{Line: 1, Column: 1}, "(1, 1)"},
		{"deep", Position{Line: 120, Column: 42}, "(120, 42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeywordFor(t *testing.T) {
	tests := []struct {
		text    string
		keyword Keyword
		ok      bool
	}{
		{"await", KeywordAwait, true},
		{"async", KeywordAsync, true},
		{"awaits", "", false},
		{"Await", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			keyword, ok := KeywordFor(tt.text)
			if ok != tt.ok || keyword != tt.keyword {
				t.Fatalf("KeywordFor(%q) = (%q, %v), want (%q, %v)", tt.text, keyword, ok, tt.keyword, tt.ok)
			}
		})
	}
}
