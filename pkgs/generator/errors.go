package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shard-lang/shard/pkgs/ast"
)

// ErrorKind classifies generator failures
type ErrorKind int

const (
	UnsupportedNode ErrorKind = iota // no translation rule for a node kind
	Internal                         // any other failure while emitting
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedNode:
		return "unsupported"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error reports why a program could not be translated to shell
type Error struct {
	Kind     ErrorKind
	NodeType string // "FloatLiteral", "MapLiteral", ...
	Message  string
	Pos      ast.Span
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", e.Kind)
	if e.NodeType != "" {
		fmt.Fprintf(&b, "cannot generate shell for %s", e.NodeType)
		if e.Message != "" {
			b.WriteString(": ")
			b.WriteString(e.Message)
		}
	} else {
		b.WriteString("generator error: ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// unsupported builds an UnsupportedNode error for n
func unsupported(n ast.Node, message string) *Error {
	return &Error{
		Kind:     UnsupportedNode,
		NodeType: ast.NodeType(n),
		Message:  message,
		Pos:      n.Position(),
	}
}

// internal wraps err as an Internal generator error
func internal(message string, err error) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// IsUnsupportedNode reports whether err is an UnsupportedNode generator error
func IsUnsupportedNode(err error) bool {
	var genErr *Error
	return errors.As(err, &genErr) && genErr.Kind == UnsupportedNode
}
