// Package diagnostics renders errors from every pipeline stage (lexer,
// parser, compiler, vm, module) into the uniform, source-annotated text
// every cmd_*.go subcommand prints on failure. Grounded on
// original_source/src/error.rs's RegisError.show(): a header line naming
// where the error occurred, the offending source line with a caret under
// the column, and a trailing summary line.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/comfort-stereo/regis/parser"
	"github.com/comfort-stereo/regis/source"
)

// Located is implemented by errors that can point at a specific byte span
// in a specific file. The parse error Bind returns (a parser.Error paired
// with its path and source text) is the only error type in this tree that
// satisfies it today; compiler/vm/module errors surface without one, the
// same way original_source/src/error.rs's RegisError.location is None for
// most VmError variants.
type Located interface {
	error
	Location() (source.CanonicalPath, source.Span)
}

// Render formats err for display, walking the wrapped error chain
// (github.com/pkg/errors-style Cause) to find the innermost Located error,
// and falling back to a bare "- error -> message" line when none is found.
func Render(err error) string {
	if located, text, ok := locate(err); ok {
		return renderLocated(located, text)
	}
	return fmt.Sprintf("- error -> %s", err.Error())
}

type causer interface {
	Cause() error
}

// sourced is a Located error that also carries the source text its span
// indexes into - what Bind produces, since it is the one place in the
// pipeline that has both an error and the file it came from in hand.
type sourced interface {
	Located
	Text() string
}

func locate(err error) (Located, string, bool) {
	for current := err; current != nil; {
		if withText, ok := current.(sourced); ok {
			return withText, withText.Text(), true
		}
		if located, ok := current.(Located); ok {
			return located, "", true
		}
		cause, ok := current.(causer)
		if !ok {
			break
		}
		current = cause.Cause()
	}
	return nil, "", false
}

func renderLocated(err Located, text string) string {
	path, span := err.Location()

	var lines []string
	if text != "" {
		position := source.PositionOf(text, span.Start)
		line := source.Line(text, span.Start)
		padding := strings.Repeat(" ", len(fmt.Sprint(position.Line)))

		lines = append(lines, fmt.Sprintf("- error -> %s:%d:%d", path, position.Line, position.Column))
		lines = append(lines, padding+" |")
		lines = append(lines, fmt.Sprintf("%d | %s", position.Line, line))
		lines = append(lines, padding+" |"+strings.Repeat(" ", position.Column)+"^")
	} else {
		lines = append(lines, fmt.Sprintf("- error -> %s", path))
	}

	lines = append(lines, fmt.Sprintf("- error -> %s", err.Error()))
	return strings.Join(lines, "\n")
}

// Bind attaches path and the text it was parsed from to a parser.Error, or
// returns err unchanged when it is not one - the one point in the pipeline
// (cmd_*.go, and module.Cache.LoadPath for a nested @import) that has both
// the error and the file it came from in hand.
func Bind(err error, path source.CanonicalPath, text string) error {
	parseErr, ok := err.(parser.Error)
	if !ok {
		return err
	}
	return boundParseError{Error: parseErr, path: path, text: text}
}

type boundParseError struct {
	parser.Error
	path source.CanonicalPath
	text string
}

func (e boundParseError) Location() (source.CanonicalPath, source.Span) {
	return e.path, e.Span
}

func (e boundParseError) Text() string {
	return e.text
}

func (e boundParseError) Unwrap() error {
	return e.Error
}
