package parser

import (
	"fmt"

	"github.com/comfort-stereo/regis/source"
)

// ErrorKind tags the shape of a ParseError.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	Expected
	ExpectedQuoted
	Specific
)

// Error is a parse-time failure. Parsing never recovers from an Error: it
// aborts the whole load. Grounded on informatter-nilan's parser/error.go
// SyntaxError (💥-prefixed Error() string, CreateSyntaxError constructor),
// generalized to tag each error with an ErrorKind alongside a label or message.
type Error struct {
	Kind    ErrorKind
	Label   string
	Message string
	Span    source.Span
}

func (e Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("💥 unexpected token at %s", e.Span)
	case Expected:
		return fmt.Sprintf("💥 expected %s at %s", e.Label, e.Span)
	case ExpectedQuoted:
		return fmt.Sprintf("💥 expected '%s' at %s", e.Label, e.Span)
	case Specific:
		return fmt.Sprintf("💥 %s at %s", e.Message, e.Span)
	}
	return "💥 parse error"
}

func errExpected(label string, span source.Span) error {
	return Error{Kind: Expected, Label: label, Span: span}
}

func errExpectedQuoted(text string, span source.Span) error {
	return Error{Kind: ExpectedQuoted, Label: text, Span: span}
}

func errUnexpectedToken(span source.Span) error {
	return Error{Kind: UnexpectedToken, Span: span}
}

func errSpecific(message string, span source.Span) error {
	return Error{Kind: Specific, Message: message, Span: span}
}
