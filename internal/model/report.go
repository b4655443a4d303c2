package model

import "time"

// FileResult holds the scan outcome for a single source file. Exactly one of
// Matches or Failure is populated: a file either tokenizes (zero or more
// matches) or fails (one failure record), never both.
type FileResult struct {
	File    Path
	Matches []Match
	Failure *FailureRecord
}

// Failed reports whether the file could not be tokenized.
func (r FileResult) Failed() bool {
	return r.Failure != nil
}

// ScanReport is the persistable result of one complete scan.
type ScanReport struct {
	Root        Path            `yaml:"root"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Matches     []Match         `yaml:"matches"`
	Failures    []FailureRecord `yaml:"failures"`
	Tally       RunTally        `yaml:"tally"`
}
