package ast

import (
	"fmt"
	"strconv"
)

// Builders for constructing trees in code and tests. Nodes built here have
// zero spans.

// NewProgram creates a program from statements
func NewProgram(stmts ...Statement) *Program {
	if stmts == nil {
		stmts = []Statement{}
	}
	return &Program{Statements: stmts}
}

// Block collects statements into a block body
func Block(stmts ...Statement) []Statement {
	if stmts == nil {
		return []Statement{}
	}
	return stmts
}

// Assign creates an assignment: NAME = VALUE
func Assign(name string, value Expression) *Assignment {
	return &Assignment{Name: name, Value: value}
}

// Cmd creates a command statement: NAME ARGS...
func Cmd(name string, args ...Expression) *Command {
	if args == nil {
		args = []Expression{}
	}
	return &Command{Name: name, Args: args}
}

// CallStmt creates the standalone call form NAME(ARGS)
func CallStmt(name string, args ...Expression) *Command {
	return &Command{Name: name, Args: []Expression{Call(name, args...)}}
}

// Call creates a function call expression
func Call(name string, args ...Expression) *FunctionCall {
	if args == nil {
		args = []Expression{}
	}
	return &FunctionCall{Name: name, Args: args}
}

// Id creates an identifier
func Id(name string) *Identifier {
	return &Identifier{Name: name}
}

// Str creates a string literal
func Str(value string) *StringLiteral {
	return &StringLiteral{Value: value}
}

// Int creates an integer literal from an int or a digit string
func Int(value interface{}) *IntegerLiteral {
	switch v := value.(type) {
	case int:
		return &IntegerLiteral{Value: int64(v), Raw: strconv.Itoa(v)}
	case int64:
		return &IntegerLiteral{Value: v, Raw: strconv.FormatInt(v, 10)}
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("invalid integer literal %q", v))
		}
		return &IntegerLiteral{Value: n, Raw: v}
	default:
		panic(fmt.Sprintf("unsupported integer type %T", value))
	}
}

// Float creates a float literal
func Float(value float64) *FloatLiteral {
	return &FloatLiteral{Value: value}
}

// Bool creates a boolean literal
func Bool(value bool) *BooleanLiteral {
	return &BooleanLiteral{Value: value}
}

// Null creates the null literal
func Null() *NullLiteral {
	return &NullLiteral{}
}

// Arr creates an array literal
func Arr(elements ...Expression) *ArrayLiteral {
	if elements == nil {
		elements = []Expression{}
	}
	return &ArrayLiteral{Elements: elements}
}

// Map creates a map literal
func Map(entries ...MapEntry) *MapLiteral {
	if entries == nil {
		entries = []MapEntry{}
	}
	return &MapLiteral{Entries: entries}
}

// Entry creates a map entry
func Entry(key, value Expression) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// Bin creates a binary operation
func Bin(left Expression, op BinaryOperator, right Expression) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

// Neg creates a unary minus
func Neg(operand Expression) *UnaryOp {
	return &UnaryOp{Op: Negate, Operand: operand}
}

// NotOp creates a logical not
func NotOp(operand Expression) *UnaryOp {
	return &UnaryOp{Op: Not, Operand: operand}
}

// Index creates base[index]
func Index(base, index Expression) *ArrayIndex {
	return &ArrayIndex{Base: base, Index: index}
}

// Key creates base['key']
func Key(base Expression, key string) *MapIndex {
	return &MapIndex{Base: base, Key: Str(key)}
}

// Interp creates an interpolated string from parts
func Interp(parts ...Expression) *InterpolatedString {
	return &InterpolatedString{Parts: parts}
}

// RangeOf creates range(start, end)
func RangeOf(start, end Expression) *Range {
	return &Range{Start: start, End: end}
}

// Len creates len(operand)
func Len(operand Expression) *Length {
	return &Length{Operand: operand}
}

// IfStmt creates an if with an optional else block
func IfStmt(cond Expression, then []Statement, els []Statement) *If {
	return &If{Condition: cond, Then: then, Else: els}
}

// WhileStmt creates a while loop
func WhileStmt(cond Expression, body ...Statement) *While {
	return &While{Condition: cond, Body: Block(body...)}
}

// ForStmt creates a for loop
func ForStmt(variable string, iterable Expression, body ...Statement) *For {
	return &For{Variable: variable, Iterable: iterable, Body: Block(body...)}
}

// Fn creates a function definition
func Fn(name string, params []string, body ...Statement) *FunctionDef {
	if params == nil {
		params = []string{}
	}
	return &FunctionDef{Name: name, Params: params, Body: Block(body...)}
}

// Ret creates a return; pass nil for a bare return
func Ret(value Expression) *Return {
	return &Return{Value: value}
}

// TryStmt creates try { body } catch v { catchBody }
func TryStmt(body []Statement, catchVar string, catchBody []Statement) *Try {
	return &Try{Body: body, CatchVar: catchVar, CatchBody: catchBody}
}

// Brk creates a break
func Brk() *Break {
	return &Break{}
}

// Cont creates a continue
func Cont() *Continue {
	return &Continue{}
}

// ExprStmt wraps an expression as a statement
func ExprStmt(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr}
}
