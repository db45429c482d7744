package generator

import (
	"strconv"
	"strings"

	"github.com/shard-lang/shard/pkgs/ast"
)

// Operators inside $(( ))
var arithmeticOperators = map[ast.BinaryOperator]string{
	ast.Add:          "+",
	ast.Subtract:     "-",
	ast.Multiply:     "*",
	ast.Divide:       "/",
	ast.Modulo:       "%",
	ast.Equal:        "==",
	ast.NotEqual:     "!=",
	ast.Less:         "<",
	ast.Greater:      ">",
	ast.LessEqual:    "<=",
	ast.GreaterEqual: ">=",
	ast.And:          "&&",
	ast.Or:           "||",
}

// Operators of the test builtin
var testOperators = map[ast.BinaryOperator]string{
	ast.Equal:        "=",
	ast.NotEqual:     "!=",
	ast.Less:         "-lt",
	ast.Greater:      "-gt",
	ast.LessEqual:    "-le",
	ast.GreaterEqual: "-ge",
}

// word renders expr as exactly one shell word
func (g *generator) word(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return singleQuote(e.Value), nil
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10), nil
	case *ast.FloatLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64), nil
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value), nil
	case *ast.NullLiteral:
		return "''", nil
	}

	frag, err := g.fragment(expr)
	if err != nil {
		return "", err
	}
	return `"` + frag + `"`, nil
}

// argument renders a command argument. A bare identifier expands to the
// variable when it is set and to the word itself otherwise, so `echo hello`
// still prints hello.
func (g *generator) argument(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return `"${` + varName(e.Name) + "-" + escapeDoubleQuoted(e.Name) + `}"`, nil
	case *ast.StringLiteral:
		if isSafeWord(e.Value) {
			return e.Value, nil
		}
	}
	return g.word(expr)
}

// fragment renders expr as text that is valid inside a double-quoted word
func (g *generator) fragment(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return escapeDoubleQuoted(e.Value), nil
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10), nil
	case *ast.FloatLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64), nil
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value), nil
	case *ast.NullLiteral:
		return "", nil
	case *ast.Identifier:
		return "${" + varName(e.Name) + "}", nil

	case *ast.InterpolatedString:
		return g.joinFragments(e.Parts, "")

	case *ast.ArrayLiteral:
		return g.joinFragments(e.Elements, " ")

	case *ast.MapLiteral:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key, err := g.mapKey(entry.Key)
			if err != nil {
				return "", err
			}
			value, err := g.fragment(entry.Value)
			if err != nil {
				return "", err
			}
			entries[i] = key + "=" + value
		}
		return strings.Join(entries, " "), nil

	case *ast.BinaryOp:
		return g.binaryFragment(e)

	case *ast.UnaryOp:
		if e.Op == ast.Negate {
			arith, err := g.arith(e)
			if err != nil {
				return "", err
			}
			return "$((" + arith + "))", nil
		}
		return g.booleanFragment(e)

	case *ast.ArrayIndex:
		list, err := g.listWords(e.Base)
		if err != nil {
			return "", err
		}
		index, err := g.arithWord(e.Index)
		if err != nil {
			return "", err
		}
		return "$(set -- " + list + "; shift " + index + `; printf '%s' "$1")`, nil

	case *ast.MapIndex:
		list, err := g.listWords(e.Base)
		if err != nil {
			return "", err
		}
		pattern, err := g.keyPattern(e.Key)
		if err != nil {
			return "", err
		}
		kv := runtimePrefix + "kv"
		return "$(for " + kv + " in " + list + `; do case "$` + kv + `" in (` +
			pattern + `=*) printf '%s' "${` + kv + `#*=}"; break ;; esac; done)`, nil

	case *ast.FunctionCall:
		if promoted := ast.PromoteBuiltin(e); promoted != ast.Expression(e) {
			return g.fragment(promoted)
		}
		return g.callFragment(e)

	case *ast.Range:
		start, err := g.arithWord(e.Start)
		if err != nil {
			return "", err
		}
		end, err := g.arithWord(e.End)
		if err != nil {
			return "", err
		}
		i, sep := runtimePrefix+"i", runtimePrefix+"sep"
		return "$(" + i + "=" + start + "; " + sep + "=; " +
			`while [ "$` + i + `" -lt ` + end + " ]; do " +
			`printf '%s%s' "$` + sep + `" "$` + i + `"; ` +
			sep + "=' '; " + i + "=$((" + i + " + 1)); done)", nil

	case *ast.Length:
		list, err := g.listWords(e.Operand)
		if err != nil {
			return "", err
		}
		return "$(set -- " + list + `; printf '%s' "$#")`, nil
	}

	return "", unsupported(expr, "no shell translation for this expression")
}

func (g *generator) joinFragments(exprs []ast.Expression, sep string) (string, error) {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		frag, err := g.fragment(expr)
		if err != nil {
			return "", err
		}
		parts[i] = frag
	}
	return strings.Join(parts, sep), nil
}

// mapKey renders a map literal key. Identifier keys name themselves.
func (g *generator) mapKey(key ast.Expression) (string, error) {
	if id, ok := key.(*ast.Identifier); ok {
		return escapeDoubleQuoted(id.Name), nil
	}
	return g.fragment(key)
}

// keyPattern renders a lookup key as a literal case pattern
func (g *generator) keyPattern(key ast.Expression) (string, error) {
	switch k := key.(type) {
	case *ast.StringLiteral:
		return singleQuote(k.Value), nil
	case *ast.Identifier:
		return `"${` + varName(k.Name) + "-" + escapeDoubleQuoted(k.Name) + `}"`, nil
	}
	return g.word(key)
}

// callFragment captures a call's result. Functions defined in the program
// return through __shardrt_ret with their output sent to stderr; anything
// else is an external command whose stdout is the value.
func (g *generator) callFragment(call *ast.FunctionCall) (string, error) {
	words := []string{g.commandName(call.Name)}
	for _, arg := range call.Args {
		word, err := g.argument(arg)
		if err != nil {
			return "", err
		}
		words = append(words, word)
	}
	invocation := strings.Join(words, " ")

	if !g.functions[call.Name] {
		return "$(" + invocation + ")", nil
	}
	return "$(" + returnVar + "=; " + invocation + ` >&2; printf '%s' "$` + returnVar + `")`, nil
}

func (g *generator) binaryFragment(e *ast.BinaryOp) (string, error) {
	switch {
	case isConcatenation(e):
		left, err := g.fragment(e.Left)
		if err != nil {
			return "", err
		}
		right, err := g.fragment(e.Right)
		if err != nil {
			return "", err
		}
		return left + right, nil

	case e.Op.IsArithmetic():
		arith, err := g.arith(e)
		if err != nil {
			return "", err
		}
		return "$((" + arith + "))", nil
	}
	return g.booleanFragment(e)
}

// booleanFragment turns a condition into the word true or false
func (g *generator) booleanFragment(expr ast.Expression) (string, error) {
	cond, err := g.condition(expr)
	if err != nil {
		return "", err
	}
	return "$(" + cond + " && printf true || printf false)", nil
}

// listWords renders an iterable as unquoted shell words for for-loops and
// set --. Array literals keep one word per element.
func (g *generator) listWords(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.ArrayLiteral:
		words := make([]string, len(e.Elements))
		for i, elem := range e.Elements {
			word, err := g.word(elem)
			if err != nil {
				return "", err
			}
			words[i] = word
		}
		return strings.Join(words, " "), nil

	case *ast.MapLiteral:
		words := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			word, err := g.word(ast.Map(entry))
			if err != nil {
				return "", err
			}
			words[i] = word
		}
		return strings.Join(words, " "), nil

	case *ast.StringLiteral:
		fields := strings.Fields(e.Value)
		for i, f := range fields {
			fields[i] = singleQuote(f)
		}
		return strings.Join(fields, " "), nil

	case *ast.Identifier:
		return "${" + varName(e.Name) + "}", nil

	case *ast.FunctionCall, *ast.Range, *ast.ArrayIndex, *ast.MapIndex:
		// already a single command substitution
		return g.fragment(expr)

	case *ast.IntegerLiteral, *ast.BooleanLiteral, *ast.NullLiteral, *ast.FloatLiteral:
		return g.word(expr)
	}

	frag, err := g.fragment(expr)
	if err != nil {
		return "", err
	}
	return `$(printf '%s' "` + frag + `")`, nil
}

// arith renders expr for use inside $(( ))
func (g *generator) arith(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10), nil
	case *ast.BooleanLiteral:
		if e.Value {
			return "1", nil
		}
		return "0", nil
	case *ast.NullLiteral:
		return "0", nil
	case *ast.FloatLiteral:
		return "", unsupported(e, "sh arithmetic has no floating point")
	case *ast.Identifier:
		return varName(e.Name), nil

	case *ast.StringLiteral:
		if _, err := strconv.ParseInt(e.Value, 10, 64); err == nil {
			return e.Value, nil
		}
		return "", unsupported(e, "non-numeric string used as a number")

	case *ast.BinaryOp:
		if isConcatenation(e) {
			return "", unsupported(e, "string concatenation used as a number")
		}
		left, err := g.arithOperand(e.Left)
		if err != nil {
			return "", err
		}
		right, err := g.arithOperand(e.Right)
		if err != nil {
			return "", err
		}
		return left + " " + arithmeticOperators[e.Op] + " " + right, nil

	case *ast.UnaryOp:
		operand, err := g.arithOperand(e.Operand)
		if err != nil {
			return "", err
		}
		if e.Op == ast.Not {
			return "!" + operand, nil
		}
		return "-" + operand, nil

	case *ast.FunctionCall, *ast.ArrayIndex, *ast.MapIndex, *ast.Length:
		// expanded before the arithmetic is evaluated
		return g.fragment(expr)
	}

	return "", unsupported(expr, "cannot be used as a number")
}

// arithOperand parenthesizes nested operators
func (g *generator) arithOperand(expr ast.Expression) (string, error) {
	arith, err := g.arith(expr)
	if err != nil {
		return "", err
	}
	switch expr.(type) {
	case *ast.BinaryOp, *ast.UnaryOp:
		return "(" + arith + ")", nil
	}
	return arith, nil
}

// arithWord renders a numeric operand as a word: literals stay bare,
// anything else is evaluated with $(( ))
func (g *generator) arithWord(expr ast.Expression) (string, error) {
	if lit, ok := expr.(*ast.IntegerLiteral); ok {
		return strconv.FormatInt(lit.Value, 10), nil
	}
	arith, err := g.arith(expr)
	if err != nil {
		return "", err
	}
	return "$((" + arith + "))", nil
}

// condition renders expr as a command list whose exit status is its truth
func (g *generator) condition(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value), nil
	case *ast.NullLiteral:
		return "false", nil
	case *ast.IntegerLiteral:
		return strconv.FormatBool(e.Value != 0), nil

	case *ast.BinaryOp:
		switch {
		case e.Op.IsComparison():
			left, err := g.word(e.Left)
			if err != nil {
				return "", err
			}
			right, err := g.word(e.Right)
			if err != nil {
				return "", err
			}
			return "[ " + left + " " + testOperators[e.Op] + " " + right + " ]", nil

		case e.Op.IsLogical():
			left, err := g.conditionOperand(e.Left, e.Op)
			if err != nil {
				return "", err
			}
			right, err := g.conditionOperand(e.Right, e.Op)
			if err != nil {
				return "", err
			}
			joiner := " && "
			if e.Op == ast.Or {
				joiner = " || "
			}
			return left + joiner + right, nil

		case !isConcatenation(e):
			arith, err := g.arith(e)
			if err != nil {
				return "", err
			}
			return "[ $((" + arith + ")) -ne 0 ]", nil
		}

	case *ast.UnaryOp:
		if e.Op == ast.Not {
			operand, err := g.conditionOperand(e.Operand, noOperator)
			if err != nil {
				return "", err
			}
			return "! " + operand, nil
		}
		arith, err := g.arith(e)
		if err != nil {
			return "", err
		}
		return "[ $((" + arith + ")) -ne 0 ]", nil
	}

	word, err := g.word(expr)
	if err != nil {
		return "", err
	}
	return g.useHelper(truthyHelper) + " " + word, nil
}

// noOperator is the parent of an operand that is not joined by and/or
const noOperator ast.BinaryOperator = -1

// conditionOperand groups a nested list with { ...; } unless it joins with
// the same operator as its parent
func (g *generator) conditionOperand(expr ast.Expression, parent ast.BinaryOperator) (string, error) {
	cond, err := g.condition(expr)
	if err != nil {
		return "", err
	}
	switch e := expr.(type) {
	case *ast.BinaryOp:
		if e.Op.IsLogical() && e.Op != parent {
			return "{ " + cond + "; }", nil
		}
	case *ast.UnaryOp:
		if e.Op == ast.Not {
			return "{ " + cond + "; }", nil
		}
	}
	return cond, nil
}

// isConcatenation reports whether + joins strings rather than adding numbers
func isConcatenation(e *ast.BinaryOp) bool {
	return e.Op == ast.Add && (isStringTyped(e.Left) || isStringTyped(e.Right))
}

func isStringTyped(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.StringLiteral, *ast.InterpolatedString:
		return true
	case *ast.BinaryOp:
		return isConcatenation(e)
	}
	return false
}
