// Package model defines the data structures for keyword scanning.
package model

// Path represents a file system path.
type Path string

// SourceSuffix is the file name suffix a file must carry to be scanned.
// The match is case-sensitive and exact.
const SourceSuffix = ".go"

// SourceFile is a discovered file under the scan root whose name ends in
// SourceSuffix. It is produced by the tree walker and consumed exactly once
// by the file scanner.
type SourceFile struct {
	Path Path
}
