package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shard-lang/shard/pkgs/ast"
)

func TestInterpolation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Expression
	}{
		{"no placeholders", `"plain text"`, ast.Str("plain text")},
		{"empty string", `""`, ast.Str("")},
		{"variable", `"Hello $name!"`, ast.Interp(ast.Str("Hello "), ast.Id("name"), ast.Str("!"))},
		{"variable only", `"$x"`, ast.Interp(ast.Id("x"))},
		{"adjacent variables", `"$a$b"`, ast.Interp(ast.Id("a"), ast.Id("b"))},
		{"qualified variable", `"port $config.port"`, ast.Interp(ast.Str("port "), ast.Id("config.port"))},
		{"trailing dot is text", `"see $name."`, ast.Interp(ast.Str("see "), ast.Id("name"), ast.Str("."))},
		{"lone dollar", `"costs $5"`, ast.Str("costs $5")},
		{"dollar at end", `"cash$"`, ast.Str("cash$")},
		{"expression", `"sum: {a + 1}"`, ast.Interp(ast.Str("sum: "), ast.Bin(ast.Id("a"), ast.Add, ast.Int(1)))},
		{"builtin in braces", `"{len(items)} items"`, ast.Interp(ast.Len(ast.Id("items")), ast.Str(" items"))},
		{"map literal in braces", `"{ {'k': 1}['k'] }"`, ast.Interp(ast.Key(ast.Map(ast.Entry(ast.Str("k"), ast.Int(1))), "k"))},
		{"brace inside quoted string", `"{'}'}"`, ast.Interp(ast.Str("}"))},
		{"escaped dollar", `"\$name"`, ast.Str("$name")},
		{"escaped brace", `"\{x}"`, ast.Str("{x}")},
		{"escaped quote", `"say \"hi\""`, ast.Str(`say "hi"`)},
		{"newline and tab escapes", `"a\nb\tc"`, ast.Str("a\nb\tc")},
		{"escaped backslash", `"a\\b"`, ast.Str(`a\b`)},
		{"escapes around placeholder", `"\t$x\n"`, ast.Interp(ast.Str("\t"), ast.Id("x"), ast.Str("\n"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseValue(t, tt.input)
			if diff := cmp.Diff(tt.want, got, treeOpts); diff != "" {
				t.Errorf("interpolation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterpolationSpans(t *testing.T) {
	// v = "hi $name {a + 1}"
	// 0123456789012345678901
	got := parseValue(t, `"hi $name {a + 1}"`).(*ast.InterpolatedString)
	if len(got.Parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(got.Parts))
	}

	wantSpans := []ast.Span{
		{Start: 5, End: 8},
		{Start: 8, End: 13},
		{Start: 13, End: 14},
		{Start: 15, End: 20},
	}
	var gotSpans []ast.Span
	for _, part := range got.Parts {
		gotSpans = append(gotSpans, part.Position())
	}
	if diff := cmp.Diff(wantSpans, gotSpans); diff != "" {
		t.Errorf("part spans mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.Span{Start: 4, End: 22}, got.Pos); diff != "" {
		t.Errorf("string span mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMsg  string
		wantSpan ast.Span
	}{
		// v = "a {b"
		// 0123456789
		{"unclosed brace", `v = "a {b"`, "unclosed '{' in string interpolation", ast.Span{Start: 7, End: 9}},
		{"empty braces", `v = "a { }"`, "empty '{}' in string interpolation", ast.Span{Start: 7, End: 10}},
		// v = "{1 +}"
		// 0123456789
		{"bad inner expression", `v = "{1 +}"`, "expected operand after '+', got end of input", ast.Span{Start: 9, End: 9}},
		{"trailing tokens", `v = "{a b}"`, "expected '}' to close string interpolation, got identifier 'b'", ast.Span{Start: 8, End: 9}},
		{"inner lexical error", `v = "{a @ b}"`, "unexpected character '@' in string interpolation", ast.Span{Start: 8, End: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			perr := requireParseError(t, err)
			if perr.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", perr.Message(), tt.wantMsg)
			}
			start, end := perr.Span()
			if diff := cmp.Diff(tt.wantSpan, ast.Span{Start: start, End: end}); diff != "" {
				t.Errorf("span mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
