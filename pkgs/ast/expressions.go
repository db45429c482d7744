package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// IntegerLiteral is a decimal integer. Raw keeps the source digits ("007").
type IntegerLiteral struct {
	Value int64
	Raw   string
	Pos   Span
}

func (e *IntegerLiteral) expressionNode() {}
func (e *IntegerLiteral) Position() Span  { return e.Pos }
func (e *IntegerLiteral) String() string {
	if e.Raw != "" {
		return e.Raw
	}
	return strconv.FormatInt(e.Value, 10)
}

// FloatLiteral is a fractional number. The scanner has no fraction syntax,
// so these only come from code that builds trees directly.
type FloatLiteral struct {
	Value float64
	Pos   Span
}

func (e *FloatLiteral) expressionNode() {}
func (e *FloatLiteral) Position() Span  { return e.Pos }
func (e *FloatLiteral) String() string  { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

type BooleanLiteral struct {
	Value bool
	Pos   Span
}

func (e *BooleanLiteral) expressionNode() {}
func (e *BooleanLiteral) Position() Span  { return e.Pos }
func (e *BooleanLiteral) String() string  { return strconv.FormatBool(e.Value) }

type NullLiteral struct {
	Pos Span
}

func (e *NullLiteral) expressionNode() {}
func (e *NullLiteral) Position() Span  { return e.Pos }
func (e *NullLiteral) String() string  { return "null" }

// StringLiteral holds decoded text
type StringLiteral struct {
	Value string
	Pos   Span
}

func (e *StringLiteral) expressionNode() {}
func (e *StringLiteral) Position() Span  { return e.Pos }
func (e *StringLiteral) String() string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(e.Value)
	return "'" + escaped + "'"
}

type ArrayLiteral struct {
	Elements []Expression
	Pos      Span
}

func (e *ArrayLiteral) expressionNode() {}
func (e *ArrayLiteral) Position() Span  { return e.Pos }
func (e *ArrayLiteral) String() string  { return "[" + joinExpressions(e.Elements, ", ") + "]" }

// MapEntry is one key: value pair, kept in source order
type MapEntry struct {
	Key   Expression
	Value Expression
}

type MapLiteral struct {
	Entries []MapEntry
	Pos     Span
}

func (e *MapLiteral) expressionNode() {}
func (e *MapLiteral) Position() Span  { return e.Pos }
func (e *MapLiteral) String() string {
	parts := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		parts[i] = entry.Key.String() + ": " + entry.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type Identifier struct {
	Name string
	Pos  Span
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) Position() Span  { return e.Pos }
func (e *Identifier) String() string  { return e.Name }

type BinaryOp struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
	Pos   Span
}

func (e *BinaryOp) expressionNode() {}
func (e *BinaryOp) Position() Span  { return e.Pos }
func (e *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

type UnaryOp struct {
	Op      UnaryOperator
	Operand Expression
	Pos     Span
}

func (e *UnaryOp) expressionNode() {}
func (e *UnaryOp) Position() Span  { return e.Pos }
func (e *UnaryOp) String() string {
	if e.Op == Not {
		return fmt.Sprintf("(not %s)", e.Operand)
	}
	return fmt.Sprintf("(%s%s)", e.Op, e.Operand)
}

// ArrayIndex is base[index] with a positional index
type ArrayIndex struct {
	Base  Expression
	Index Expression
	Pos   Span
}

func (e *ArrayIndex) expressionNode() {}
func (e *ArrayIndex) Position() Span  { return e.Pos }
func (e *ArrayIndex) String() string  { return fmt.Sprintf("%s[%s]", e.Base, e.Index) }

// MapIndex is base['key']
type MapIndex struct {
	Base Expression
	Key  Expression
	Pos  Span
}

func (e *MapIndex) expressionNode() {}
func (e *MapIndex) Position() Span  { return e.Pos }
func (e *MapIndex) String() string  { return fmt.Sprintf("%s[%s]", e.Base, e.Key) }

type FunctionCall struct {
	Name string
	Args []Expression
	Pos  Span
}

func (e *FunctionCall) expressionNode() {}
func (e *FunctionCall) Position() Span  { return e.Pos }
func (e *FunctionCall) String() string {
	return e.Name + "(" + joinExpressions(e.Args, ", ") + ")"
}

// InterpolatedString alternates literal text (*StringLiteral parts) with
// embedded expressions.
type InterpolatedString struct {
	Parts []Expression
	Pos   Span
}

func (e *InterpolatedString) expressionNode() {}
func (e *InterpolatedString) Position() Span  { return e.Pos }
func (e *InterpolatedString) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, part := range e.Parts {
		switch p := part.(type) {
		case *StringLiteral:
			b.WriteString(interpolationEscaper.Replace(p.Value))
		case *Identifier:
			b.WriteString("$" + p.Name)
		default:
			b.WriteString("{" + p.String() + "}")
		}
	}
	b.WriteByte('"')
	return b.String()
}

var interpolationEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	`{`, `\{`,
	"\n", `\n`,
	"\t", `\t`,
)

// Range is the half-open integer range [Start, End)
type Range struct {
	Start Expression
	End   Expression
	Pos   Span
}

func (e *Range) expressionNode() {}
func (e *Range) Position() Span  { return e.Pos }
func (e *Range) String() string  { return fmt.Sprintf("range(%s, %s)", e.Start, e.End) }

// Length is the element count of an array or map
type Length struct {
	Operand Expression
	Pos     Span
}

func (e *Length) expressionNode() {}
func (e *Length) Position() Span  { return e.Pos }
func (e *Length) String() string  { return fmt.Sprintf("len(%s)", e.Operand) }

// PromoteBuiltin turns len(x) into Length and range(a, b) into Range.
// Any other call, or a builtin with the wrong arity, is returned unchanged.
func PromoteBuiltin(call *FunctionCall) Expression {
	switch {
	case call.Name == "len" && len(call.Args) == 1:
		return &Length{Operand: call.Args[0], Pos: call.Pos}
	case call.Name == "range" && len(call.Args) == 2:
		return &Range{Start: call.Args[0], End: call.Args[1], Pos: call.Pos}
	}
	return call
}
