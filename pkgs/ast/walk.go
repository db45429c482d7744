package ast

import (
	"fmt"
	"strings"
)

// Inspect traverses the tree depth-first in source order, calling f for each
// node. If f returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		inspectStatements(n.Statements, f)
	case *Assignment:
		Inspect(n.Value, f)
	case *Command:
		inspectExpressions(n.Args, f)
	case *If:
		Inspect(n.Condition, f)
		inspectStatements(n.Then, f)
		inspectStatements(n.Else, f)
	case *While:
		Inspect(n.Condition, f)
		inspectStatements(n.Body, f)
	case *For:
		Inspect(n.Iterable, f)
		inspectStatements(n.Body, f)
	case *FunctionDef:
		inspectStatements(n.Body, f)
		if n.ReturnValue != nil {
			Inspect(n.ReturnValue, f)
		}
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *Try:
		inspectStatements(n.Body, f)
		inspectStatements(n.CatchBody, f)
	case *ExpressionStatement:
		Inspect(n.Expr, f)
	case *ArrayLiteral:
		inspectExpressions(n.Elements, f)
	case *MapLiteral:
		for _, entry := range n.Entries {
			Inspect(entry.Key, f)
			Inspect(entry.Value, f)
		}
	case *BinaryOp:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryOp:
		Inspect(n.Operand, f)
	case *ArrayIndex:
		Inspect(n.Base, f)
		Inspect(n.Index, f)
	case *MapIndex:
		Inspect(n.Base, f)
		Inspect(n.Key, f)
	case *FunctionCall:
		inspectExpressions(n.Args, f)
	case *InterpolatedString:
		inspectExpressions(n.Parts, f)
	case *Range:
		Inspect(n.Start, f)
		Inspect(n.End, f)
	case *Length:
		Inspect(n.Operand, f)
	}
}

func inspectStatements(stmts []Statement, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

func inspectExpressions(exprs []Expression, f func(Node) bool) {
	for _, e := range exprs {
		Inspect(e, f)
	}
}

// Contains reports whether any node under root satisfies pred
func Contains(root Node, pred func(Node) bool) bool {
	found := false
	Inspect(root, func(n Node) bool {
		if found {
			return false
		}
		if pred(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// NodeType returns the bare type name of a node ("Assignment", "BinaryOp")
func NodeType(n Node) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
