// Package astfmt renders a Shard syntax tree for debugging: JSON, canonical
// CBOR, or an indented text tree. Output is a read-only projection; nothing
// here can be turned back into a tree.
package astfmt

import (
	"github.com/shard-lang/shard/pkgs/ast"
)

// Node is the serializable projection of one tree node
type Node struct {
	Type     string   `json:"type"`
	Label    string   `json:"label,omitempty"` // role in the parent: "condition", "then", "key"...
	Value    any      `json:"value,omitempty"`
	Params   []string `json:"params,omitempty"`
	Span     ast.Span `json:"span"`
	Children []*Node  `json:"children,omitempty"`
}

// Project converts a tree into its serializable form
func Project(node ast.Node) *Node {
	if node == nil {
		return nil
	}
	n := &Node{Type: ast.NodeType(node), Span: node.Position()}

	switch v := node.(type) {
	case *ast.Program:
		n.Children = statements(v.Statements)

	// statements
	case *ast.Assignment:
		n.Value = v.Name
		n.add("", v.Value)
	case *ast.Command:
		n.Value = v.Name
		n.Children = expressions(v.Args)
	case *ast.If:
		n.add("condition", v.Condition)
		n.block("then", v.Then)
		if v.Else != nil {
			n.block("else", v.Else)
		}
	case *ast.While:
		n.add("condition", v.Condition)
		n.block("body", v.Body)
	case *ast.For:
		n.Value = v.Variable
		n.add("iterable", v.Iterable)
		n.block("body", v.Body)
	case *ast.FunctionDef:
		n.Value = v.Name
		n.Params = v.Params
		if v.ReturnValue != nil {
			n.add("returns", v.ReturnValue)
		} else {
			n.block("body", v.Body)
		}
	case *ast.Return:
		n.add("", v.Value)
	case *ast.Try:
		n.Value = v.CatchVar
		n.block("body", v.Body)
		n.block("catch", v.CatchBody)
	case *ast.ExpressionStatement:
		n.add("", v.Expr)
	case *ast.Break, *ast.Continue:

	// expressions
	case *ast.IntegerLiteral:
		n.Value = v.Value
	case *ast.FloatLiteral:
		n.Value = v.Value
	case *ast.BooleanLiteral:
		n.Value = v.Value
	case *ast.StringLiteral:
		n.Value = v.Value
	case *ast.NullLiteral:
	case *ast.Identifier:
		n.Value = v.Name
	case *ast.ArrayLiteral:
		n.Children = expressions(v.Elements)
	case *ast.MapLiteral:
		for _, entry := range v.Entries {
			n.add("key", entry.Key)
			n.add("value", entry.Value)
		}
	case *ast.BinaryOp:
		n.Value = v.Op.String()
		n.add("", v.Left)
		n.add("", v.Right)
	case *ast.UnaryOp:
		n.Value = v.Op.String()
		n.add("", v.Operand)
	case *ast.ArrayIndex:
		n.add("base", v.Base)
		n.add("index", v.Index)
	case *ast.MapIndex:
		n.add("base", v.Base)
		n.add("key", v.Key)
	case *ast.FunctionCall:
		n.Value = v.Name
		n.Children = expressions(v.Args)
	case *ast.InterpolatedString:
		n.Children = expressions(v.Parts)
	case *ast.Range:
		n.add("start", v.Start)
		n.add("end", v.End)
	case *ast.Length:
		n.add("", v.Operand)
	}
	return n
}

func (n *Node) add(label string, child ast.Node) {
	if child == nil {
		return
	}
	projected := Project(child)
	projected.Label = label
	n.Children = append(n.Children, projected)
}

// block adds a synthetic Block node holding stmts
func (n *Node) block(label string, stmts []ast.Statement) {
	n.Children = append(n.Children, &Node{
		Type:     "Block",
		Label:    label,
		Children: statements(stmts),
	})
}

func statements(stmts []ast.Statement) []*Node {
	out := make([]*Node, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, Project(stmt))
	}
	return out
}

func expressions(exprs []ast.Expression) []*Node {
	out := make([]*Node, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, Project(expr))
	}
	return out
}
