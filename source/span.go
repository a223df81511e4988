// Package source holds the primitives shared by every later stage of the
// pipeline: byte spans into source text, derived line/column positions for
// diagnostics, and canonical filesystem paths used to key loaded modules.
package source

import "fmt"

// Span is a half-open byte range [Start, End) into a source file's text.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span from a start (inclusive) and end (exclusive) byte
// offset.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Merge returns the smallest span containing both s and other.
func (s Span) Merge(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Slice returns the substring of text covered by the span.
func (s Span) Slice(text string) string {
	return text[s.Start:s.End]
}
