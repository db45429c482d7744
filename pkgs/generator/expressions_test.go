package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shard-lang/shard/pkgs/ast"
)

// TestAssignedValues checks the right-hand side of NAME=VALUE for each
// expression kind
func TestAssignedValues(t *testing.T) {
	tests := []struct {
		name  string
		value ast.Expression
		want  string
	}{
		{"addition", ast.Bin(ast.Id("x"), ast.Add, ast.Int(1)), `"$((__shard_x + 1))"`},
		{
			"nested arithmetic",
			ast.Bin(ast.Bin(ast.Id("a"), ast.Add, ast.Id("b")), ast.Multiply, ast.Int(2)),
			`"$(((__shard_a + __shard_b) * 2))"`,
		},
		{"modulo", ast.Bin(ast.Id("n"), ast.Modulo, ast.Int(2)), `"$((__shard_n % 2))"`},
		{"negation", ast.Neg(ast.Id("x")), `"$((-__shard_x))"`},
		{"concatenation", ast.Bin(ast.Str("a"), ast.Add, ast.Id("b")), `"a${__shard_b}"`},
		{
			"chained concatenation",
			ast.Bin(ast.Bin(ast.Id("a"), ast.Add, ast.Str("-")), ast.Add, ast.Id("b")),
			`"${__shard_a}-${__shard_b}"`,
		},
		{
			"interpolation",
			ast.Interp(ast.Str("Hello, "), ast.Id("name"), ast.Str("!")),
			`"Hello, ${__shard_name}!"`,
		},
		{"escaped interpolation text", ast.Interp(ast.Str(`cost: $5 "`), ast.Id("x")), `"cost: \$5 \"${__shard_x}"`},
		{
			"comparison",
			ast.Bin(ast.Id("x"), ast.Equal, ast.Int(1)),
			`"$([ "${__shard_x}" = 1 ] && printf true || printf false)"`,
		},
		{
			"not",
			ast.NotOp(ast.Id("done")),
			`"$(! __shard_truthy "${__shard_done}" && printf true || printf false)"`,
		},
		{"array", ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3)), `"1 2 3"`},
		{"empty array", ast.Arr(), `""`},
		{
			"map",
			ast.Map(ast.Entry(ast.Id("host"), ast.Str("localhost")), ast.Entry(ast.Str("port"), ast.Int(8080))),
			`"host=localhost port=8080"`,
		},
		{
			"array index",
			ast.Index(ast.Id("xs"), ast.Int(0)),
			`"$(set -- ${__shard_xs}; shift 0; printf '%s' "$1")"`,
		},
		{
			"computed index",
			ast.Index(ast.Arr(ast.Str("a"), ast.Str("b")), ast.Bin(ast.Id("i"), ast.Subtract, ast.Int(1))),
			`"$(set -- 'a' 'b'; shift $((__shard_i - 1)); printf '%s' "$1")"`,
		},
		{
			"map lookup",
			ast.Key(ast.Id("cfg"), "host"),
			`"$(for __shardrt_kv in ${__shard_cfg}; do case "$__shardrt_kv" in ('host'=*) printf '%s' "${__shardrt_kv#*=}"; break ;; esac; done)"`,
		},
		{"length", ast.Len(ast.Id("xs")), `"$(set -- ${__shard_xs}; printf '%s' "$#")"`},
		{"length via call", ast.Call("len", ast.Id("xs")), `"$(set -- ${__shard_xs}; printf '%s' "$#")"`},
		{
			"range",
			ast.RangeOf(ast.Int(1), ast.Id("n")),
			`"$(__shardrt_i=1; __shardrt_sep=; while [ "$__shardrt_i" -lt $((__shard_n)) ]; do printf '%s%s' "$__shardrt_sep" "$__shardrt_i"; __shardrt_sep=' '; __shardrt_i=$((__shardrt_i + 1)); done)"`,
		},
		{"external call", ast.Call("hostname", ast.Str("-s")), `"$(hostname -s)"`},
		{"float literal", ast.Float(1.5), `1.5`},
		{"arithmetic on length", ast.Bin(ast.Len(ast.Id("xs")), ast.Add, ast.Int(1)), `"$(($(set -- ${__shard_xs}; printf '%s' "$#") + 1))"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(&GeneratorConfig{indent: "  "}, ast.NewProgram())
			got, err := g.assignedValue(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name string
		cond ast.Expression
		want string
	}{
		{"true", ast.Bool(true), "true"},
		{"null", ast.Null(), "false"},
		{"zero", ast.Int(0), "false"},
		{"nonzero", ast.Int(3), "true"},
		{"string equality", ast.Bin(ast.Id("env"), ast.Equal, ast.Str("prod")), `[ "${__shard_env}" = 'prod' ]`},
		{"not equal", ast.Bin(ast.Id("a"), ast.NotEqual, ast.Id("b")), `[ "${__shard_a}" != "${__shard_b}" ]`},
		{"ordering", ast.Bin(ast.Id("n"), ast.GreaterEqual, ast.Int(10)), `[ "${__shard_n}" -ge 10 ]`},
		{"truthy value", ast.Id("flag"), `__shard_truthy "${__shard_flag}"`},
		{"negation", ast.NotOp(ast.Id("flag")), `! __shard_truthy "${__shard_flag}"`},
		{
			"same operator chain",
			ast.Bin(ast.Bin(ast.Bool(true), ast.And, ast.Bool(false)), ast.And, ast.Bool(true)),
			"true && false && true",
		},
		{
			"mixed operators are grouped",
			ast.Bin(ast.Bin(ast.Bool(true), ast.Or, ast.Bool(false)), ast.And, ast.Bool(true)),
			"{ true || false; } && true",
		},
		{
			"negated operand is grouped",
			ast.Bin(ast.Bin(ast.Id("a"), ast.Equal, ast.Int(1)), ast.And, ast.NotOp(ast.Id("b"))),
			`[ "${__shard_a}" = 1 ] && { ! __shard_truthy "${__shard_b}"; }`,
		},
		{
			"not of a list",
			ast.NotOp(ast.Bin(ast.Bool(true), ast.Or, ast.Bool(false))),
			"! { true || false; }",
		},
		{"arithmetic", ast.Bin(ast.Id("n"), ast.Modulo, ast.Int(2)), "[ $((__shard_n % 2)) -ne 0 ]"},
		{"concatenation is a value", ast.Bin(ast.Str("a"), ast.Add, ast.Id("b")), `__shard_truthy "a${__shard_b}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(&GeneratorConfig{indent: "  "}, ast.NewProgram())
			got, err := g.condition(tt.cond)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("condition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	tests := []struct {
		name     string
		expr     ast.Expression
		nodeType string
	}{
		{"float", ast.Bin(ast.Float(2.5), ast.Multiply, ast.Int(2)), "FloatLiteral"},
		{"word string", ast.Bin(ast.Id("x"), ast.Subtract, ast.Str("abc")), "StringLiteral"},
		{"concatenation", ast.Neg(ast.Bin(ast.Str("a"), ast.Add, ast.Id("b"))), "BinaryOp"},
		{"array", ast.Bin(ast.Arr(ast.Int(1)), ast.Multiply, ast.Int(2)), "ArrayLiteral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(&GeneratorConfig{indent: "  "}, ast.NewProgram())
			_, err := g.assignedValue(tt.expr)
			if err == nil {
				t.Fatal("expected an error")
			}
			genErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *Error, got %T", err)
			}
			if genErr.Kind != UnsupportedNode || genErr.NodeType != tt.nodeType {
				t.Errorf("got %s for %s, want unsupported %s", genErr.Kind, genErr.NodeType, tt.nodeType)
			}
		})
	}
}
