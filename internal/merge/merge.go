// Package merge implements the deterministic three-way merge attempt.
//
// A Merger never returns an error: any internal failure degrades to an
// Unresolved outcome so the caller can fall back to semantic resolution.
package merge

import "strings"

// Status classifies the outcome of a deterministic merge attempt.
type Status int

const (
	// StatusResolved means the merge produced clean content with no
	// conflict markers.
	StatusResolved Status = iota
	// StatusUnresolved means the merge could not produce clean content.
	StatusUnresolved
)

// Outcome is the result of a deterministic merge attempt. When Status is
// StatusUnresolved, Err optionally records why the backend degraded; it is
// informational only and never propagated as a failure.
type Outcome struct {
	Status  Status
	Content string
	Err     error
}

// Resolved reports whether the outcome carries final content.
func (o Outcome) Resolved() bool {
	return o.Status == StatusResolved && o.Content != ""
}

// Merger attempts a content-only three-way merge of base/ours/theirs.
type Merger interface {
	Merge(base, ours, theirs string) Outcome
}

// Backend names for New.
const (
	BackendDiff3   = "diff3"
	BackendGitFile = "gitfile"
)

// New returns the merger for the named backend. Unknown or empty names
// select the diff3 backend.
func New(backend string) Merger {
	if backend == BackendGitFile {
		return &GitFileMerger{}
	}
	return &Diff3Merger{}
}

var conflictMarkers = []string{"<<<<<<<", "=======", ">>>>>>>"}

// ContainsMarkers reports whether text contains any conflict-marker
// sequence left by a line-based merge.
func ContainsMarkers(text string) bool {
	for _, marker := range conflictMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// splitLines splits content into lines, each retaining its trailing
// newline. Content that does not end with a newline yields a final line
// without one; empty content yields no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
