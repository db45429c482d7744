package ast

import (
	"fmt"
	"strings"
)

// Assignment binds Name to the value of an expression: x = 10
type Assignment struct {
	Name  string
	Value Expression
	Pos   Span
}

func (s *Assignment) statementNode() {}
func (s *Assignment) Position() Span { return s.Pos }
func (s *Assignment) String() string { return fmt.Sprintf("%s = %s", s.Name, s.Value) }

// Command invokes a shell command: ls -la /home.
// A standalone call f(a) is a Command named f whose only argument is the
// *FunctionCall itself.
type Command struct {
	Name string
	Args []Expression
	Pos  Span
}

func (s *Command) statementNode() {}
func (s *Command) Position() Span { return s.Pos }
func (s *Command) String() string {
	if call := s.Call(); call != nil {
		return call.String()
	}
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + joinExpressions(s.Args, " ")
}

// Call returns the embedded call when the command is the f(args) form
func (s *Command) Call() *FunctionCall {
	if len(s.Args) != 1 {
		return nil
	}
	if call, ok := s.Args[0].(*FunctionCall); ok && call.Name == s.Name {
		return call
	}
	return nil
}

// If is a conditional. Else is nil when there is no else clause; an
// else-if chain is an Else holding a single nested *If.
type If struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
	Pos       Span
}

func (s *If) statementNode() {}
func (s *If) Position() Span { return s.Pos }
func (s *If) String() string {
	out := "if " + s.Condition.String() + " " + bracedBlock(s.Then)
	if s.Else == nil {
		return out
	}
	if nested := s.ElseIf(); nested != nil {
		return out + " else " + nested.String()
	}
	return out + " else " + bracedBlock(s.Else)
}

// ElseIf returns the nested if of an else-if chain, or nil
func (s *If) ElseIf() *If {
	if len(s.Else) != 1 {
		return nil
	}
	nested, _ := s.Else[0].(*If)
	return nested
}

type While struct {
	Condition Expression
	Body      []Statement
	Pos       Span
}

func (s *While) statementNode() {}
func (s *While) Position() Span { return s.Pos }
func (s *While) String() string { return "while " + s.Condition.String() + " " + bracedBlock(s.Body) }

type For struct {
	Variable string
	Iterable Expression
	Body     []Statement
	Pos      Span
}

func (s *For) statementNode() {}
func (s *For) Position() Span { return s.Pos }
func (s *For) String() string {
	return fmt.Sprintf("for %s in %s %s", s.Variable, s.Iterable, bracedBlock(s.Body))
}

// FunctionDef declares a function. ReturnValue is set for the
// expression-bodied form fn f(x) -> expr.
type FunctionDef struct {
	Name        string
	Params      []string
	Body        []Statement
	ReturnValue Expression
	Pos         Span
}

func (s *FunctionDef) statementNode() {}
func (s *FunctionDef) Position() Span { return s.Pos }
func (s *FunctionDef) String() string {
	header := fmt.Sprintf("fn %s(%s)", s.Name, strings.Join(s.Params, ", "))
	if s.ReturnValue != nil && len(s.Body) == 0 {
		return header + " -> " + s.ReturnValue.String()
	}
	return header + " " + bracedBlock(s.Body)
}

// Return exits the enclosing function. Value is nil for a bare return.
type Return struct {
	Value Expression
	Pos   Span
}

func (s *Return) statementNode() {}
func (s *Return) Position() Span { return s.Pos }
func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// Try runs Body and, if a command in it fails, CatchBody with CatchVar bound
// to a description of the failure.
type Try struct {
	Body      []Statement
	CatchVar  string
	CatchBody []Statement
	Pos       Span
}

func (s *Try) statementNode() {}
func (s *Try) Position() Span { return s.Pos }
func (s *Try) String() string {
	return fmt.Sprintf("try %s catch %s %s", bracedBlock(s.Body), s.CatchVar, bracedBlock(s.CatchBody))
}

type Break struct {
	Pos Span
}

func (s *Break) statementNode() {}
func (s *Break) Position() Span { return s.Pos }
func (s *Break) String() string { return "break" }

type Continue struct {
	Pos Span
}

func (s *Continue) statementNode() {}
func (s *Continue) Position() Span { return s.Pos }
func (s *Continue) String() string { return "continue" }

// ExpressionStatement evaluates an expression for its side effects
type ExpressionStatement struct {
	Expr Expression
	Pos  Span
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) Position() Span { return s.Pos }
func (s *ExpressionStatement) String() string { return s.Expr.String() }
