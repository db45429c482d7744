// Package ast defines the Shard syntax tree.
//
// Expressions and statements are closed sum types: each category is an
// interface with an unexported marker method, so only this package can add
// variants. Every node owns its children outright; the tree has no parent
// links and no sharing.
package ast

import (
	"fmt"
	"strings"
)

// Node represents any node in the AST
type Node interface {
	String() string
	Position() Span
}

// Span is a half-open byte range in the source. Nodes built in code have a
// zero span.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Expression is a value-producing node
type Expression interface {
	Node
	expressionNode()
}

// Statement is an executable node
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the tree: statements in execution order
type Program struct {
	Statements []Statement
	Pos        Span
}

func (p *Program) String() string {
	return blockString(p.Statements, "")
}

func (p *Program) Position() Span {
	return p.Pos
}

// BinaryOperator enumerates infix operators
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	Modulo
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	And
	Or
)

var binaryOperatorSymbols = [...]string{
	Add:          "+",
	Subtract:     "-",
	Multiply:     "*",
	Divide:       "/",
	Modulo:       "%",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	And:          "and",
	Or:           "or",
}

func (op BinaryOperator) String() string {
	if int(op) >= 0 && int(op) < len(binaryOperatorSymbols) {
		return binaryOperatorSymbols[op]
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// IsArithmetic reports whether op is one of + - * / %
func (op BinaryOperator) IsArithmetic() bool {
	return op <= Modulo
}

// IsComparison reports whether op is an equality or ordering operator
func (op BinaryOperator) IsComparison() bool {
	return op >= Equal && op <= GreaterEqual
}

// IsLogical reports whether op is and/or
func (op BinaryOperator) IsLogical() bool {
	return op == And || op == Or
}

// UnaryOperator enumerates prefix operators
type UnaryOperator int

const (
	Negate UnaryOperator = iota
	Not
)

func (op UnaryOperator) String() string {
	switch op {
	case Negate:
		return "-"
	case Not:
		return "not"
	default:
		return fmt.Sprintf("UnaryOperator(%d)", int(op))
	}
}

func blockString(stmts []Statement, indent string) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, line := range strings.Split(stmt.String(), "\n") {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	return b.String()
}

func bracedBlock(stmts []Statement) string {
	if len(stmts) == 0 {
		return "{ }"
	}
	return "{\n" + blockString(stmts, "    ") + "\n}"
}

func joinExpressions(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}
