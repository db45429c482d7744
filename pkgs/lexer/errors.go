package lexer

import "fmt"

// ErrorKind classifies lexical failures
type ErrorKind int

const (
	UnexpectedChar ErrorKind = iota
	UnterminatedString
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case UnterminatedString:
		return "unterminated string"
	default:
		return "lexical error"
	}
}

// Error is a lexical error. It always carries the complete source text and
// the byte span of the offending input so a caret diagnostic can be drawn.
type Error struct {
	Kind     ErrorKind
	Found    rune // offending character, UnexpectedChar only
	Src      string
	Location Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d", e.Message(), e.Location.Start)
}

// Message describes the failure without position information
func (e *Error) Message() string {
	switch e.Kind {
	case UnexpectedChar:
		return fmt.Sprintf("unexpected character '%c'", e.Found)
	case UnterminatedString:
		return "unterminated string literal"
	default:
		return e.Kind.String()
	}
}

// Source returns the full source text the error refers to
func (e *Error) Source() string {
	return e.Src
}

// Span returns the offending byte range
func (e *Error) Span() (int, int) {
	return e.Location.Start, e.Location.End
}
