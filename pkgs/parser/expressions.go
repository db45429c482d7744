package parser

import (
	"strconv"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/lexer"
)

// Operator tables per precedence tier, lowest first
var (
	orOperators = map[lexer.TokenType]ast.BinaryOperator{
		lexer.OR: ast.Or,
	}
	andOperators = map[lexer.TokenType]ast.BinaryOperator{
		lexer.AND: ast.And,
	}
	equalityOperators = map[lexer.TokenType]ast.BinaryOperator{
		lexer.EQ_EQ:  ast.Equal,
		lexer.NOT_EQ: ast.NotEqual,
	}
	comparisonOperators = map[lexer.TokenType]ast.BinaryOperator{
		lexer.LT:    ast.Less,
		lexer.GT:    ast.Greater,
		lexer.LT_EQ: ast.LessEqual,
		lexer.GT_EQ: ast.GreaterEqual,
	}
	additiveOperators = map[lexer.TokenType]ast.BinaryOperator{
		lexer.PLUS:  ast.Add,
		lexer.MINUS: ast.Subtract,
	}
	multiplicativeOperators = map[lexer.TokenType]ast.BinaryOperator{
		lexer.MULTIPLY: ast.Multiply,
		lexer.DIVIDE:   ast.Divide,
		lexer.MODULO:   ast.Modulo,
	}
)

// startsExpression reports whether a token can begin an expression
func startsExpression(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENTIFIER, lexer.INTEGER, lexer.BOOLEAN, lexer.NULL,
		lexer.STRING, lexer.INTERP_STRING,
		lexer.LPAREN, lexer.LSQUARE, lexer.LBRACE,
		lexer.MINUS, lexer.NOT:
		return true
	}
	return false
}

// expression parses a full expression starting at the lowest precedence
func (p *parser) expression() (ast.Expression, error) {
	return p.or()
}

func (p *parser) or() (ast.Expression, error) {
	return p.leftAssociative(p.and, orOperators)
}

func (p *parser) and() (ast.Expression, error) {
	return p.leftAssociative(p.equality, andOperators)
}

func (p *parser) equality() (ast.Expression, error) {
	return p.leftAssociative(p.comparison, equalityOperators)
}

func (p *parser) comparison() (ast.Expression, error) {
	return p.leftAssociative(p.additive, comparisonOperators)
}

func (p *parser) additive() (ast.Expression, error) {
	return p.leftAssociative(p.multiplicative, additiveOperators)
}

func (p *parser) multiplicative() (ast.Expression, error) {
	return p.leftAssociative(p.unary, multiplicativeOperators)
}

// leftAssociative parses next (op next)* folding to the left
func (p *parser) leftAssociative(next func() (ast.Expression, error), ops map[lexer.TokenType]ast.BinaryOperator) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.current().Type]
		if !ok {
			return left, nil
		}
		opTok := p.advance()

		if !startsExpression(p.current().Type) {
			return nil, p.errorExpected("operand", "after '"+opTok.Symbol()+"'")
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{
			Op:    op,
			Left:  left,
			Right: right,
			Pos:   ast.Span{Start: left.Position().Start, End: right.Position().End},
		}
	}
}

// unary parses prefix - and not
func (p *parser) unary() (ast.Expression, error) {
	var op ast.UnaryOperator
	switch p.current().Type {
	case lexer.MINUS:
		op = ast.Negate
	case lexer.NOT:
		op = ast.Not
	default:
		return p.primary()
	}

	opTok := p.advance()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Op: op, Operand: operand, Pos: p.spanFrom(opTok.Span.Start)}, nil
}

// primary parses literals, identifiers, calls, collections and
// parenthesized expressions, followed by any postfix indexing
func (p *parser) primary() (ast.Expression, error) {
	p.trace("enter_primary")

	expr, err := p.operand()
	if err != nil {
		return nil, err
	}
	return p.postfix(expr)
}

func (p *parser) operand() (ast.Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.INTEGER:
		p.advance()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errorAt(tok, "integer literal %s is out of range", tok.Text)
		}
		return &ast.IntegerLiteral{Value: value, Raw: tok.Text, Pos: ast.Span(tok.Span)}, nil

	case lexer.BOOLEAN:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Text == "true", Pos: ast.Span(tok.Span)}, nil

	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{Pos: ast.Span(tok.Span)}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Text, Pos: ast.Span(tok.Span)}, nil

	case lexer.INTERP_STRING:
		p.advance()
		return p.interpolatedString(tok)

	case lexer.IDENTIFIER:
		if next := p.peek(1); next.Type == lexer.LPAREN && tok.Adjacent(next) {
			p.advance()
			call, err := p.callArguments(tok)
			if err != nil {
				return nil, err
			}
			return ast.PromoteBuiltin(call), nil
		}
		p.advance()
		return &ast.Identifier{Name: tok.Text, Pos: ast.Span(tok.Span)}, nil

	case lexer.LSQUARE:
		return p.arrayLiteral()

	case lexer.LBRACE:
		return p.mapLiteral()

	case lexer.LPAREN:
		p.advance()
		if p.at(lexer.RPAREN) {
			return nil, p.errorExpected("expression", "inside '()'")
		}
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'", "to close parenthesized expression"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	return nil, p.errorExpected("expression", "")
}

// postfix applies base[index] while '[' touches the previous token
func (p *parser) postfix(base ast.Expression) (ast.Expression, error) {
	for p.at(lexer.LSQUARE) && p.tokens[p.pos-1].Adjacent(p.current()) {
		p.advance()
		if p.at(lexer.RSQUARE) {
			return nil, p.errorExpected("index", "inside '[]'")
		}
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RSQUARE, "']'", "to close index"); err != nil {
			return nil, err
		}

		span := p.spanFrom(base.Position().Start)
		if key, ok := index.(*ast.StringLiteral); ok {
			base = &ast.MapIndex{Base: base, Key: key, Pos: span}
		} else {
			base = &ast.ArrayIndex{Base: base, Index: index, Pos: span}
		}
	}
	return base, nil
}

// callArguments parses '(' [expr (, expr)*] ')' after the callee name
func (p *parser) callArguments(name lexer.Token) (*ast.FunctionCall, error) {
	p.advance() // '('

	args := []ast.Expression{}
	for !p.at(lexer.RPAREN) {
		if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
			return nil, p.errorExpected("')'", "to close call to '"+name.Text+"'")
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		if !p.at(lexer.RPAREN) {
			return nil, p.errorExpected("',' or ')'", "in call to '"+name.Text+"'")
		}
	}
	p.advance() // ')'

	return &ast.FunctionCall{Name: name.Text, Args: args, Pos: p.spanFrom(name.Span.Start)}, nil
}

// arrayLiteral parses [ expr (, expr)* ] on a single line
func (p *parser) arrayLiteral() (ast.Expression, error) {
	p.trace("enter_arrayLiteral")
	open := p.advance()

	elements := []ast.Expression{}
	for !p.at(lexer.RSQUARE) {
		if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
			return nil, p.errorExpected("']'", "to close array literal")
		}
		elem, err := p.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)

		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		if !p.at(lexer.RSQUARE) {
			if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
				return nil, p.errorExpected("']'", "to close array literal")
			}
			return nil, p.errorExpected("',' or ']'", "in array literal")
		}
	}
	p.advance() // ']'

	return &ast.ArrayLiteral{Elements: elements, Pos: p.spanFrom(open.Span.Start)}, nil
}

// mapLiteral parses { key : value (, key : value)* } on a single line
func (p *parser) mapLiteral() (ast.Expression, error) {
	p.trace("enter_mapLiteral")
	open := p.advance()

	entries := []ast.MapEntry{}
	for !p.at(lexer.RBRACE) {
		if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
			return nil, p.errorExpected("'}'", "to close map literal")
		}
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON, "':'", "after map key"); err != nil {
			return nil, err
		}
		if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
			return nil, p.errorExpected("map value", "after ':'")
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: value})

		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		if !p.at(lexer.RBRACE) {
			if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
				return nil, p.errorExpected("'}'", "to close map literal")
			}
			return nil, p.errorExpected("',' or '}'", "in map literal")
		}
	}
	p.advance() // '}'

	return &ast.MapLiteral{Entries: entries, Pos: p.spanFrom(open.Span.Start)}, nil
}
