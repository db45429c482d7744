package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/lexer"
)

var treeOpts = cmp.Options{
	cmpopts.IgnoreTypes(ast.Span{}),
	cmpopts.EquateEmpty(),
}

type parseCase struct {
	name  string
	input string
	want  *ast.Program
}

func runParseCases(t *testing.T, tests []parseCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, treeOpts); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
				t.Logf("input: %q", tt.input)
			}
		})
	}
}

func TestAssignments(t *testing.T) {
	runParseCases(t, []parseCase{
		{"integer", "x = 10", ast.NewProgram(ast.Assign("x", ast.Int(10)))},
		{"string", "name = 'Shard'", ast.NewProgram(ast.Assign("name", ast.Str("Shard")))},
		{"boolean", "flag = true", ast.NewProgram(ast.Assign("flag", ast.Bool(true)))},
		{"null", "val = null", ast.NewProgram(ast.Assign("val", ast.Null()))},
		{"variable reference", "x = y", ast.NewProgram(ast.Assign("x", ast.Id("y")))},
		{"underscore name", "_private = 10", ast.NewProgram(ast.Assign("_private", ast.Int(10)))},
		{"leading zeros kept", "n = 007", ast.NewProgram(ast.Assign("n", ast.Int("007")))},
		{"qualified name", "config.port = 8080", ast.NewProgram(ast.Assign("config.port", ast.Int(8080)))},
		{"trailing comment", "x = 1 # one", ast.NewProgram(ast.Assign("x", ast.Int(1)))},
	})
}

func TestCommands(t *testing.T) {
	runParseCases(t, []parseCase{
		{"identifier argument", "echo hello", ast.NewProgram(ast.Cmd("echo", ast.Id("hello")))},
		{"integer argument", "print 123", ast.NewProgram(ast.Cmd("print", ast.Int(123)))},
		{"mixed arguments", "cmd arg1 'string' 42", ast.NewProgram(ast.Cmd("cmd", ast.Id("arg1"), ast.Str("string"), ast.Int(42)))},
		{"no arguments", "clear", ast.NewProgram(ast.Cmd("clear"))},
		{"flags and paths", "ls -la /home", ast.NewProgram(ast.Cmd("ls", ast.Str("-la"), ast.Str("/home")))},
		{"call statement", "greet(name, 'x')", ast.NewProgram(ast.CallStmt("greet", ast.Id("name"), ast.Str("x")))},
		{"builtin call statement stays a call", "len(arr)", ast.NewProgram(ast.CallStmt("len", ast.Id("arr")))},
	})
}

func TestMultipleStatements(t *testing.T) {
	runParseCases(t, []parseCase{
		{"three lines", "x = 1\ny = 2\necho x", ast.NewProgram(
			ast.Assign("x", ast.Int(1)),
			ast.Assign("y", ast.Int(2)),
			ast.Cmd("echo", ast.Id("x")),
		)},
		{"blank lines and comments", "\n\n# header\nx = 1\n\n# trailer\n", ast.NewProgram(ast.Assign("x", ast.Int(1)))},
		{"empty program", "", ast.NewProgram()},
	})
}

func TestControlFlow(t *testing.T) {
	runParseCases(t, []parseCase{
		{"if", "if x > 5 {\n  echo big\n}", ast.NewProgram(
			ast.IfStmt(ast.Bin(ast.Id("x"), ast.Greater, ast.Int(5)), ast.Block(ast.Cmd("echo", ast.Id("big"))), nil),
		)},
		{"if else", "if ok {\n  echo yes\n} else {\n  echo no\n}", ast.NewProgram(
			ast.IfStmt(ast.Id("ok"), ast.Block(ast.Cmd("echo", ast.Id("yes"))), ast.Block(ast.Cmd("echo", ast.Id("no")))),
		)},
		{"else on next line", "if ok {\n  echo yes\n}\nelse {\n  echo no\n}", ast.NewProgram(
			ast.IfStmt(ast.Id("ok"), ast.Block(ast.Cmd("echo", ast.Id("yes"))), ast.Block(ast.Cmd("echo", ast.Id("no")))),
		)},
		{"else if chain", "if a {\n  x = 1\n} else if b {\n  x = 2\n} else {\n  x = 3\n}", ast.NewProgram(
			ast.IfStmt(ast.Id("a"), ast.Block(ast.Assign("x", ast.Int(1))), ast.Block(
				ast.IfStmt(ast.Id("b"), ast.Block(ast.Assign("x", ast.Int(2))), ast.Block(ast.Assign("x", ast.Int(3)))),
			)),
		)},
		{"single line block", "if a { echo hi }", ast.NewProgram(
			ast.IfStmt(ast.Id("a"), ast.Block(ast.Cmd("echo", ast.Id("hi"))), nil),
		)},
		{"while", "while i < 10 {\n  i = i + 1\n}", ast.NewProgram(
			ast.WhileStmt(ast.Bin(ast.Id("i"), ast.Less, ast.Int(10)), ast.Assign("i", ast.Bin(ast.Id("i"), ast.Add, ast.Int(1)))),
		)},
		{"for over array", "for item in [1, 2, 3] {\n  echo item\n}", ast.NewProgram(
			ast.ForStmt("item", ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3)), ast.Cmd("echo", ast.Id("item"))),
		)},
		{"for over range", "for i in range(0, 3) {\n  echo i\n}", ast.NewProgram(
			ast.ForStmt("i", ast.RangeOf(ast.Int(0), ast.Int(3)), ast.Cmd("echo", ast.Id("i"))),
		)},
		{"break and continue", "while true {\n  if done {\n    break\n  }\n  continue\n}", ast.NewProgram(
			ast.WhileStmt(ast.Bool(true), ast.IfStmt(ast.Id("done"), ast.Block(ast.Brk()), nil), ast.Cont()),
		)},
		{"empty block", "while x {\n}", ast.NewProgram(ast.WhileStmt(ast.Id("x")))},
		{"nested loops", "for a in xs {\n  for b in ys {\n    echo a b\n  }\n}", ast.NewProgram(
			ast.ForStmt("a", ast.Id("xs"), ast.ForStmt("b", ast.Id("ys"), ast.Cmd("echo", ast.Id("a"), ast.Id("b")))),
		)},
	})
}

func TestFunctions(t *testing.T) {
	arrow := ast.Fn("double", []string{"x"})
	arrow.ReturnValue = ast.Bin(ast.Id("x"), ast.Multiply, ast.Int(2))

	runParseCases(t, []parseCase{
		{"one parameter", "fn greet(name) {\n  echo name\n}", ast.NewProgram(
			ast.Fn("greet", []string{"name"}, ast.Cmd("echo", ast.Id("name"))),
		)},
		{"no parameters", "fn hello() {\n  echo hi\n}", ast.NewProgram(
			ast.Fn("hello", nil, ast.Cmd("echo", ast.Id("hi"))),
		)},
		{"return value", "fn add(a, b) {\n  return a + b\n}", ast.NewProgram(
			ast.Fn("add", []string{"a", "b"}, ast.Ret(ast.Bin(ast.Id("a"), ast.Add, ast.Id("b")))),
		)},
		{"bare return", "fn stop() {\n  return\n}", ast.NewProgram(
			ast.Fn("stop", nil, ast.Ret(nil)),
		)},
		{"arrow form", "fn double(x) -> x * 2", ast.NewProgram(arrow)},
		{"call in value position", "y = add(1, 2)", ast.NewProgram(
			ast.Assign("y", ast.Call("add", ast.Int(1), ast.Int(2))),
		)},
	})
}

func TestTryCatch(t *testing.T) {
	runParseCases(t, []parseCase{
		{"named catch", "try {\n  make build\n} catch err {\n  echo err\n}", ast.NewProgram(
			ast.TryStmt(ast.Block(ast.Cmd("make", ast.Id("build"))), "err", ast.Block(ast.Cmd("echo", ast.Id("err")))),
		)},
		{"default catch variable", "try {\n  make\n} catch {\n  echo failed\n}", ast.NewProgram(
			ast.TryStmt(ast.Block(ast.Cmd("make")), "e", ast.Block(ast.Cmd("echo", ast.Id("failed")))),
		)},
		{"catch on next line", "try {\n  make\n}\n\ncatch e {\n}", ast.NewProgram(
			ast.TryStmt(ast.Block(ast.Cmd("make")), "e", ast.Block()),
		)},
	})
}

func TestExpressionStatements(t *testing.T) {
	runParseCases(t, []parseCase{
		{"integer", "42", ast.NewProgram(ast.ExprStmt(ast.Int(42)))},
		{"string", "'hello'", ast.NewProgram(ast.ExprStmt(ast.Str("hello")))},
		{"arithmetic", "(1 + 2) * 3", ast.NewProgram(ast.ExprStmt(ast.Bin(ast.Bin(ast.Int(1), ast.Add, ast.Int(2)), ast.Multiply, ast.Int(3))))},
		{"negation", "-x", ast.NewProgram(ast.ExprStmt(ast.Neg(ast.Id("x"))))},
	})
}

func TestParseSpans(t *testing.T) {
	prog, err := ParseString("x = 1 + 2\necho hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assign := prog.Statements[0].(*ast.Assignment)
	if diff := cmp.Diff(ast.Span{Start: 0, End: 9}, assign.Pos); diff != "" {
		t.Errorf("assignment span mismatch (-want +got):\n%s", diff)
	}
	sum := assign.Value.(*ast.BinaryOp)
	if diff := cmp.Diff(ast.Span{Start: 4, End: 9}, sum.Pos); diff != "" {
		t.Errorf("binary span mismatch (-want +got):\n%s", diff)
	}
	cmd := prog.Statements[1].(*ast.Command)
	if diff := cmp.Diff(ast.Span{Start: 10, End: 17}, cmd.Pos); diff != "" {
		t.Errorf("command span mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.Span{Start: 0, End: 17}, prog.Pos); diff != "" {
		t.Errorf("program span mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDetailedTelemetry(t *testing.T) {
	tokens, err := lexer.Tokenize("x = 1\nif x {\n  echo x\n}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := ParseDetailed(tokens, WithTelemetryTiming(), WithDebugPaths())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Telemetry == nil {
		t.Fatal("expected telemetry")
	}
	if result.Telemetry.TokenCount != len(tokens) {
		t.Errorf("TokenCount = %d, want %d", result.Telemetry.TokenCount, len(tokens))
	}
	if result.Telemetry.StatementCount != 2 {
		t.Errorf("StatementCount = %d, want 2", result.Telemetry.StatementCount)
	}

	var sawIf bool
	for _, ev := range result.DebugEvents {
		if ev.Event == "enter_ifStmt" {
			sawIf = true
		}
	}
	if !sawIf {
		t.Errorf("expected an enter_ifStmt debug event, got %d events", len(result.DebugEvents))
	}
}

func TestParseWithoutTelemetry(t *testing.T) {
	tokens, _ := lexer.Tokenize("x = 1")
	result, err := ParseDetailed(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Telemetry != nil || result.DebugEvents != nil {
		t.Error("telemetry and debug events should be nil when disabled")
	}
}

func TestParseRequiresEOF(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for token stream without EOF")
		}
	}()
	_, _ = Parse([]lexer.Token{{Type: lexer.IDENTIFIER, Text: "x"}})
}
