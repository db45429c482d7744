package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shard-lang/shard/pkgs/ast"
)

func (g *generator) statement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return g.assignment(s)
	case *ast.Command:
		return g.command(s)
	case *ast.If:
		return g.ifStmt(s, false)
	case *ast.While:
		return g.whileStmt(s)
	case *ast.For:
		return g.forStmt(s)
	case *ast.FunctionDef:
		return g.functionDef(s)
	case *ast.Return:
		return g.returnStmt(s)
	case *ast.Try:
		return g.tryStmt(s)
	case *ast.Break:
		g.line("break")
		return nil
	case *ast.Continue:
		g.line("continue")
		return nil
	case *ast.ExpressionStatement:
		if b, ok := s.Expr.(*ast.BooleanLiteral); ok {
			// true and false are commands in sh
			name := strconv.FormatBool(b.Value)
			g.line(name)
			g.recordStatus(name)
			return nil
		}
		word, err := g.word(s.Expr)
		if err != nil {
			return err
		}
		g.line(": ", word)
		return nil
	default:
		return unsupported(stmt, "no shell translation for this statement")
	}
}

func (g *generator) assignment(s *ast.Assignment) error {
	value, err := g.assignedValue(s.Value)
	if err != nil {
		return err
	}
	g.line(varName(s.Name), "=", value)
	return nil
}

// assignedValue renders the right-hand side of NAME=VALUE
func (g *generator) assignedValue(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10), nil
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value), nil
	case *ast.NullLiteral:
		return "", nil
	}
	return g.word(expr)
}

// command emits NAME ARGS... and captures its status. The call form f(a, b)
// runs the same way; a builtin call statement is evaluated for effect.
func (g *generator) command(s *ast.Command) error {
	args := s.Args
	if call := s.Call(); call != nil {
		if promoted := ast.PromoteBuiltin(call); promoted != ast.Expression(call) {
			word, err := g.word(promoted)
			if err != nil {
				return err
			}
			g.line(": ", word)
			return nil
		}
		args = call.Args
	}

	words := []string{g.commandName(s.Name)}
	for _, arg := range args {
		word, err := g.argument(arg)
		if err != nil {
			return err
		}
		words = append(words, word)
	}

	g.line(strings.Join(words, " "))
	g.recordStatus(s.Name)
	return nil
}

// recordStatus captures the status of the command just emitted. Inside a
// try the first failure is kept in the try's error variable.
func (g *generator) recordStatus(name string) {
	g.line(statusVar, "=$?")
	if errVar := g.currentTry(); errVar != "" {
		message := escapeDoubleQuoted(name) + " exited with status $" + statusVar
		g.line(`[ "$`, statusVar, `" -eq 0 ] || [ -n "$`, errVar, `" ] || `, errVar, `="`, message, `"`)
	}
}

// commandName maps program-defined functions to their shell names and
// leaves external commands untouched
func (g *generator) commandName(name string) string {
	if g.functions[name] {
		return funcName(name)
	}
	return name
}

// ifStmt emits if/elif/else/fi. An else holding a single nested if
// continues the chain as elif.
func (g *generator) ifStmt(s *ast.If, elif bool) error {
	cond, err := g.condition(s.Condition)
	if err != nil {
		return err
	}
	keyword := "if "
	if elif {
		keyword = "elif "
	}
	g.line(keyword, cond, "; then")

	g.indent()
	if err := g.block(s.Then, false); err != nil {
		return err
	}
	g.dedent()

	if nested := s.ElseIf(); nested != nil {
		return g.ifStmt(nested, true)
	}
	if s.Else != nil {
		g.line("else")
		g.indent()
		if err := g.block(s.Else, false); err != nil {
			return err
		}
		g.dedent()
	}
	g.line("fi")
	return nil
}

func (g *generator) whileStmt(s *ast.While) error {
	cond, err := g.condition(s.Condition)
	if err != nil {
		return err
	}
	g.line("while ", cond, "; do")
	if err := g.loopBody(s.Body); err != nil {
		return err
	}
	g.line("done")
	return nil
}

// forStmt iterates the word-split expansion of the iterable
func (g *generator) forStmt(s *ast.For) error {
	list, err := g.listWords(s.Iterable)
	if err != nil {
		return err
	}
	g.line("for ", varName(s.Variable), " in ", list, "; do")
	if err := g.loopBody(s.Body); err != nil {
		return err
	}
	g.line("done")
	return nil
}

// loopBody emits a loop body; inside a try it stops iterating once a
// failure has been recorded
func (g *generator) loopBody(body []ast.Statement) error {
	g.indent()
	defer g.dedent()

	if errVar := g.currentTry(); errVar != "" {
		g.line(`[ -z "$`, errVar, `" ] || break`)
	}
	return g.block(body, false)
}

// functionDef emits name() { ... }. Parameters are bound from the
// positional arguments as locals, so a recursive call leaves the caller's
// parameters intact. Bodies never inherit an enclosing try.
func (g *generator) functionDef(s *ast.FunctionDef) error {
	g.line(funcName(s.Name), "() {")
	g.indent()

	outer := g.tries
	g.tries = nil
	g.fnDepth++
	defer func() {
		g.tries = outer
		g.fnDepth--
	}()

	for i, param := range s.Params {
		g.line("local ", varName(param), `="`, positional(i+1), `"`)
	}

	switch {
	case s.ReturnValue != nil:
		if err := g.returnValue(s.ReturnValue, "return 0"); err != nil {
			return err
		}
	case len(s.Body) == 0 && len(s.Params) > 0:
		// parameter bindings already make the body non-empty
	default:
		if err := g.block(s.Body, false); err != nil {
			return err
		}
	}

	g.dedent()
	g.line("}")
	return nil
}

// returnStmt hands a value back through __shardrt_ret. Outside any function
// a return ends the script.
func (g *generator) returnStmt(s *ast.Return) error {
	leave := "return"
	if g.fnDepth == 0 {
		leave = "exit"
	}

	if s.Value == nil {
		g.line(leave)
		return nil
	}
	return g.returnValue(s.Value, leave+" 0")
}

func (g *generator) returnValue(value ast.Expression, leave string) error {
	rendered, err := g.assignedValue(value)
	if err != nil {
		return err
	}
	g.line(returnVar, "=", rendered)
	g.line(leave)
	return nil
}

// tryStmt runs the body recording the first failing command, then runs the
// catch body with the failure message bound to the catch variable
func (g *generator) tryStmt(s *ast.Try) error {
	g.tryCount++
	errVar := fmt.Sprintf("%serr%d", runtimePrefix, g.tryCount)

	g.line(errVar, "=")
	g.tries = append(g.tries, errVar)
	err := g.block(s.Body, false)
	g.tries = g.tries[:len(g.tries)-1]
	if err != nil {
		return err
	}

	g.line(`if [ -n "$`, errVar, `" ]; then`)
	g.indent()
	g.line(varName(s.CatchVar), `="$`, errVar, `"`)
	if len(s.CatchBody) > 0 {
		if err := g.block(s.CatchBody, false); err != nil {
			return err
		}
	}
	g.dedent()
	g.line("fi")
	return nil
}
