package parser

import (
	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/invariant"
	"github.com/shard-lang/shard/pkgs/lexer"
)

// statements parses statements until '}' or EOF. The caller consumes the
// closing brace.
func (p *parser) statements() ([]ast.Statement, error) {
	stmts := []ast.Statement{}
	for {
		prevPos := p.pos
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return stmts, nil
		}
		invariant.Invariant(p.pos > prevPos, "statement must consume tokens")
		stmts = append(stmts, stmt)
	}
}

// statement parses one statement, or returns nil at '}' / EOF
func (p *parser) statement() (ast.Statement, error) {
	p.skipTrivia()

	tok := p.current()
	switch tok.Type {
	case lexer.RBRACE, lexer.EOF:
		return nil, nil
	case lexer.IDENTIFIER:
		return p.identifierStatement()
	case lexer.LBRACE:
		return nil, p.errorAt(tok, "unexpected '{' at start of statement; blocks follow if, while, for, fn or try")
	}

	if startsExpression(tok.Type) {
		return p.expressionStatement()
	}
	return nil, p.errorAt(tok, "unexpected token at start of statement")
}

// identifierStatement dispatches on keyword text, then on the token after
// the identifier: '=' assignment, a touching '(' call, anything else a
// command.
func (p *parser) identifierStatement() (ast.Statement, error) {
	tok := p.current()
	switch tok.Text {
	case "if":
		return p.ifStmt()
	case "while":
		return p.whileStmt()
	case "for":
		return p.forStmt()
	case "fn":
		return p.fnDecl()
	case "return":
		return p.returnStmt()
	case "try":
		return p.tryStmt()
	case "break", "continue":
		return p.loopControl()
	case "else":
		return nil, p.errorAt(tok, "'else' without a matching 'if'")
	case "catch":
		return nil, p.errorAt(tok, "'catch' without a matching 'try'")
	}

	next := p.peek(1)
	switch {
	case next.Type == lexer.EQUALS:
		return p.assignment()
	case next.Type == lexer.LPAREN && tok.Adjacent(next):
		return p.callStatement()
	default:
		return p.command()
	}
}

func (p *parser) assignment() (ast.Statement, error) {
	p.trace("enter_assignment")
	name := p.advance()
	p.advance() // '='

	if p.atStatementEnd() {
		return nil, p.errorExpected("value", "after '='")
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Assignment{Name: name.Text, Value: value, Pos: p.spanFrom(name.Span.Start)}
	if err := p.endStatement("after assignment"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// callStatement parses name(args) as a Command whose only argument is the call
func (p *parser) callStatement() (ast.Statement, error) {
	p.trace("enter_callStatement")
	name := p.advance()
	call, err := p.callArguments(name)
	if err != nil {
		return nil, err
	}
	stmt := &ast.Command{Name: name.Text, Args: []ast.Expression{call}, Pos: call.Pos}
	if err := p.endStatement("after function call"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) command() (ast.Statement, error) {
	p.trace("enter_command")
	name := p.advance()
	args, err := p.commandArguments(name)
	if err != nil {
		return nil, err
	}
	stmt := &ast.Command{Name: name.Text, Args: args, Pos: p.spanFrom(name.Span.Start)}
	if err := p.endStatement("after command"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) expressionStatement() (ast.Statement, error) {
	p.trace("enter_expressionStatement")
	start := p.current().Span.Start
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Expr: expr, Pos: p.spanFrom(start)}
	if err := p.endStatement("after expression"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// block parses '{' statements '}' after a construct header
func (p *parser) block(context string) ([]ast.Statement, error) {
	open, err := p.expect(lexer.LBRACE, "'{'", context)
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	stmts, err := p.statements()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.RBRACE) {
		perr := p.errorExpected("'}'", "to close block")
		perr.Suggestion = "add '}' to close the block opened at " + p.describeOffset(open.Span.Start)
		return nil, perr
	}
	p.advance()
	return stmts, nil
}

// condition parses the header expression of if/while
func (p *parser) condition(keyword string) (ast.Expression, error) {
	if p.at(lexer.LBRACE) || p.atStatementEnd() {
		return nil, p.errorExpected("condition", "after '"+keyword+"'")
	}
	return p.expression()
}

// ifStmt parses if/else-if/else; else-if recurses into a right-nested chain
func (p *parser) ifStmt() (ast.Statement, error) {
	p.trace("enter_ifStmt")
	start := p.advance()

	cond, err := p.condition("if")
	if err != nil {
		return nil, err
	}
	then, err := p.block("after if condition")
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Condition: cond, Then: then}

	// else may sit on a following line
	save := p.pos
	p.skipTrivia()
	if !p.atWord("else") {
		p.pos = save
		stmt.Pos = p.spanFrom(start.Span.Start)
		return stmt, nil
	}
	p.advance()

	if p.atWord("if") {
		nested, err := p.ifStmt()
		if err != nil {
			return nil, err
		}
		stmt.Else = []ast.Statement{nested}
	} else {
		body, err := p.block("after 'else'")
		if err != nil {
			return nil, err
		}
		stmt.Else = body
	}

	stmt.Pos = p.spanFrom(start.Span.Start)
	return stmt, nil
}

func (p *parser) whileStmt() (ast.Statement, error) {
	p.trace("enter_whileStmt")
	start := p.advance()

	cond, err := p.condition("while")
	if err != nil {
		return nil, err
	}
	body, err := p.block("after while condition")
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body, Pos: p.spanFrom(start.Span.Start)}, nil
}

// forStmt parses: for IDENT in EXPR { BLOCK }
func (p *parser) forStmt() (ast.Statement, error) {
	p.trace("enter_forStmt")
	start := p.advance()

	variable, err := p.expect(lexer.IDENTIFIER, "loop variable", "after 'for'")
	if err != nil {
		return nil, err
	}
	if !p.atWord("in") {
		return nil, p.errorExpected("'in'", "after loop variable")
	}
	p.advance()

	if p.at(lexer.LBRACE) || p.atStatementEnd() {
		return nil, p.errorExpected("iterable", "after 'in'")
	}
	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block("after for iterable")
	if err != nil {
		return nil, err
	}
	return &ast.For{Variable: variable.Text, Iterable: iterable, Body: body, Pos: p.spanFrom(start.Span.Start)}, nil
}

// fnDecl parses: fn IDENT ( params ) { BLOCK }  or  fn IDENT ( params ) -> EXPR
func (p *parser) fnDecl() (ast.Statement, error) {
	p.trace("enter_fnDecl")
	start := p.advance()

	name, err := p.expect(lexer.IDENTIFIER, "function name", "after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('", "after function name"); err != nil {
		return nil, err
	}

	params := []string{}
	for p.at(lexer.IDENTIFIER) {
		params = append(params, p.advance().Text)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
		if !p.at(lexer.IDENTIFIER) {
			return nil, p.errorExpected("parameter name", "after ','")
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'", "to close parameter list"); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDef{Name: name.Text, Params: params}

	if p.at(lexer.ARROW) {
		p.advance()
		if p.atStatementEnd() {
			return nil, p.errorExpected("expression", "after '->'")
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		fn.Body = []ast.Statement{}
		fn.ReturnValue = value
		fn.Pos = p.spanFrom(start.Span.Start)
		if err := p.endStatement("after function expression"); err != nil {
			return nil, err
		}
		return fn, nil
	}

	body, err := p.block("after function signature")
	if err != nil {
		return nil, err
	}
	fn.Body = body
	fn.Pos = p.spanFrom(start.Span.Start)
	return fn, nil
}

// returnStmt parses return with an optional value
func (p *parser) returnStmt() (ast.Statement, error) {
	p.trace("enter_returnStmt")
	start := p.advance()

	stmt := &ast.Return{}
	if !p.atStatementEnd() {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	stmt.Pos = p.spanFrom(start.Span.Start)
	if err := p.endStatement("after return"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// tryStmt parses: try { BLOCK } catch [IDENT] { BLOCK }
func (p *parser) tryStmt() (ast.Statement, error) {
	p.trace("enter_tryStmt")
	start := p.advance()

	body, err := p.block("after 'try'")
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	if !p.atWord("catch") {
		perr := p.errorExpected("'catch'", "after try block")
		if tok := p.current(); tok.Type == lexer.IDENTIFIER {
			if word := closestWord(tok.Text, []string{"catch"}); word != "" {
				perr.Suggestion = "did you mean '" + word + "'?"
			}
		}
		if perr.Suggestion == "" {
			perr.Suggestion = "every try block needs a catch clause: try { ... } catch err { ... }"
		}
		return nil, perr
	}
	p.advance()

	catchVar := "e"
	if p.at(lexer.IDENTIFIER) {
		catchVar = p.advance().Text
	}

	catchBody, err := p.block("after 'catch'")
	if err != nil {
		return nil, err
	}
	return &ast.Try{Body: body, CatchVar: catchVar, CatchBody: catchBody, Pos: p.spanFrom(start.Span.Start)}, nil
}

func (p *parser) loopControl() (ast.Statement, error) {
	tok := p.advance()
	var stmt ast.Statement
	if tok.Text == "break" {
		stmt = &ast.Break{Pos: ast.Span(tok.Span)}
	} else {
		stmt = &ast.Continue{Pos: ast.Span(tok.Span)}
	}
	if err := p.endStatement("after '" + tok.Text + "'"); err != nil {
		return nil, err
	}
	return stmt, nil
}
