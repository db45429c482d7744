package parser

import (
	"strings"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/lexer"
)

// shellWordTokens may continue a shell word once one has started
var shellWordTokens = map[lexer.TokenType]bool{
	lexer.IDENTIFIER: true,
	lexer.INTEGER:    true,
	lexer.BOOLEAN:    true,
	lexer.NULL:       true,
	lexer.MINUS:      true,
	lexer.DIVIDE:     true,
	lexer.EQUALS:     true,
	lexer.COLON:      true,
	lexer.PLUS:       true,
	lexer.AND:        true,
	lexer.OR:         true,
	lexer.NOT:        true,
}

// commandArguments parses the words after a command name up to the end of
// the line. Flags and paths (-la, --dry-run, /usr/bin, src/main.go) are
// rejoined from their tokens into one string; every other argument is a
// primary expression.
func (p *parser) commandArguments(name lexer.Token) ([]ast.Expression, error) {
	args := []ast.Expression{}
	for {
		if p.atStatementEnd() {
			return args, nil
		}

		if p.startsShellWord() {
			args = append(args, p.shellWord())
			continue
		}

		if !startsExpression(p.current().Type) || p.at(lexer.LBRACE) {
			return nil, p.argumentError(name)
		}
		arg, err := p.primary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

// startsShellWord reports whether the current token opens a flag or path
func (p *parser) startsShellWord() bool {
	tok := p.current()
	switch tok.Type {
	case lexer.MINUS, lexer.DIVIDE:
		return true
	case lexer.IDENTIFIER:
		next := p.peek(1)
		return next.Type == lexer.DIVIDE && tok.Adjacent(next)
	}
	return false
}

// shellWord consumes a run of touching tokens and returns their joined text
func (p *parser) shellWord() ast.Expression {
	first := p.advance()

	var b strings.Builder
	b.WriteString(first.Symbol())
	for shellWordTokens[p.current().Type] && p.tokens[p.pos-1].Adjacent(p.current()) {
		b.WriteString(p.advance().Symbol())
	}
	return &ast.StringLiteral{Value: b.String(), Pos: p.spanFrom(first.Span.Start)}
}

// argumentError reports an argument that cannot be parsed. A command name
// that looks like a misspelled keyword gets a suggestion.
func (p *parser) argumentError(name lexer.Token) *ParseError {
	perr := p.errorAt(p.current(), "unexpected %s in arguments to '%s'", p.current().Describe(), name.Text)
	if word := closestWord(name.Text, lexer.ControlWords); word != "" {
		perr.Suggestion = "did you mean '" + word + "'?"
	}
	return perr
}
