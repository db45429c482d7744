// Package generator lowers a Shard program to a POSIX sh script.
//
// Generation is a single pass over the tree that writes into one buffer.
// Runtime conventions the output relies on:
//
//   - variables are __shard_<name>
//   - every command is followed by __shard_status=$?
//   - functions hand values back through __shardrt_ret
//   - arrays are space-joined words; maps are space-joined key=value words
//   - try blocks record the first failure in a per-try __shardrt_errN
package generator

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/invariant"
)

// GeneratorOpt represents a generator configuration option
type GeneratorOpt func(*GeneratorConfig)

// GeneratorConfig holds generator configuration
type GeneratorConfig struct {
	indent string
	logger zerolog.Logger
}

// WithIndent sets the indentation unit for nested blocks (default two spaces)
func WithIndent(indent string) GeneratorOpt {
	return func(c *GeneratorConfig) {
		c.indent = indent
	}
}

// WithLogger sends generation summaries to logger at debug level
func WithLogger(logger zerolog.Logger) GeneratorOpt {
	return func(c *GeneratorConfig) {
		c.logger = logger
	}
}

// Generate translates prog into a complete shell script. It does not modify
// prog, and generating the same program twice yields identical text.
func Generate(prog *ast.Program, opts ...GeneratorOpt) (string, error) {
	invariant.NotNil(prog, "program")

	config := &GeneratorConfig{indent: "  ", logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(config)
	}

	g := newGenerator(config, prog)
	if err := g.block(prog.Statements, true); err != nil {
		return "", err
	}

	script, err := renderScript(scriptData{Helpers: g.usedHelpers(), Body: g.out.String()})
	if err != nil {
		return "", internal("rendering script", err)
	}

	config.logger.Debug().
		Int("statements", len(prog.Statements)).
		Int("helpers", len(g.helpers)).
		Int("bytes", len(script)).
		Msg("generated shell script")
	return script, nil
}

// generator holds the state of one Generate call
type generator struct {
	config *GeneratorConfig
	out    strings.Builder
	level  int

	functions map[string]bool // names defined anywhere in the program
	helpers   map[string]bool
	tries     []string // error variables of enclosing try blocks, innermost last
	tryCount  int
	fnDepth   int
}

func newGenerator(config *GeneratorConfig, prog *ast.Program) *generator {
	g := &generator{
		config:    config,
		functions: map[string]bool{},
		helpers:   map[string]bool{},
	}
	ast.Inspect(prog, func(n ast.Node) bool {
		if fn, ok := n.(*ast.FunctionDef); ok {
			g.functions[fn.Name] = true
		}
		return true
	})
	return g
}

// line writes one indented line
func (g *generator) line(parts ...string) {
	g.out.WriteString(strings.Repeat(g.config.indent, g.level))
	for _, p := range parts {
		g.out.WriteString(p)
	}
	g.out.WriteByte('\n')
}

func (g *generator) indent() { g.level++ }

func (g *generator) dedent() {
	invariant.Invariant(g.level > 0, "dedent below top level")
	g.level--
}

func (g *generator) useHelper(name string) string {
	invariant.Precondition(helpers[name].Name != "", "unknown helper %q", name)
	g.helpers[name] = true
	return name
}

func (g *generator) usedHelpers() []Helper {
	names := make([]string, 0, len(g.helpers))
	for name := range g.helpers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Helper, len(names))
	for i, name := range names {
		out[i] = helpers[name]
	}
	return out
}

// currentTry returns the error variable of the innermost try, or ""
func (g *generator) currentTry() string {
	if len(g.tries) == 0 {
		return ""
	}
	return g.tries[len(g.tries)-1]
}

// block emits statements. An empty nested block becomes ':' since sh does
// not allow empty bodies. Inside a try, everything after a statement that
// runs a command is skipped once a failure has been recorded.
func (g *generator) block(stmts []ast.Statement, topLevel bool) error {
	if len(stmts) == 0 {
		if !topLevel {
			g.line(":")
		}
		return nil
	}

	guards := 0
	for i, stmt := range stmts {
		if err := g.statement(stmt); err != nil {
			return err
		}
		if errVar := g.currentTry(); errVar != "" && i < len(stmts)-1 && mayFail(stmt) {
			g.line(`if [ -z "$`, errVar, `" ]; then`)
			g.indent()
			guards++
		}
	}
	for ; guards > 0; guards-- {
		g.dedent()
		g.line("fi")
	}
	return nil
}

// mayFail reports whether stmt runs a command whose status a try records
func mayFail(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return false
	case *ast.ExpressionStatement:
		_, ok := s.Expr.(*ast.BooleanLiteral)
		return ok
	}
	return ast.Contains(stmt, func(n ast.Node) bool {
		_, ok := n.(*ast.Command)
		return ok
	})
}
