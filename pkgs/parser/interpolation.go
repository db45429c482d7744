package parser

import (
	"strings"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/lexer"
)

// interpolatedString splits a double-quoted payload into literal text,
// $name references and {expr} embeds. Offsets inside the payload are mapped
// back onto the original source, one byte past the opening quote.
func (p *parser) interpolatedString(tok lexer.Token) (ast.Expression, error) {
	p.trace("enter_interpolatedString")

	payload := tok.Text
	base := tok.Span.Start + 1

	parts := []ast.Expression{}
	placeholders := 0

	var lit strings.Builder
	litStart := 0
	flush := func(end int) {
		if lit.Len() == 0 {
			return
		}
		parts = append(parts, &ast.StringLiteral{
			Value: lit.String(),
			Pos:   ast.Span{Start: base + litStart, End: base + end},
		})
		lit.Reset()
	}

	for i := 0; i < len(payload); {
		if lit.Len() == 0 {
			litStart = i
		}
		ch := payload[i]

		switch {
		case ch == '\\' && i+1 < len(payload):
			lit.WriteString(unescape(payload[i+1]))
			i += 2

		case ch == '$' && i+1 < len(payload) && isNameStart(payload[i+1]):
			end := scanName(payload, i+1)
			flush(i)
			parts = append(parts, &ast.Identifier{
				Name: payload[i+1 : end],
				Pos:  ast.Span{Start: base + i, End: base + end},
			})
			placeholders++
			i = end

		case ch == '{':
			closer := matchingBrace(payload, i)
			if closer < 0 {
				return nil, p.interpolationError(base+i, base+len(payload), "unclosed '{' in string interpolation",
					"close the embedded expression with '}' or escape the brace as \\{")
			}
			inner := payload[i+1 : closer]
			if strings.TrimSpace(inner) == "" {
				return nil, p.interpolationError(base+i, base+closer+1, "empty '{}' in string interpolation",
					"put an expression inside the braces or escape the brace as \\{")
			}

			expr, err := p.embeddedExpression(inner, base+i+1)
			if err != nil {
				return nil, err
			}
			flush(i)
			parts = append(parts, expr)
			placeholders++
			i = closer + 1

		default:
			lit.WriteByte(ch)
			i++
		}
	}
	flush(len(payload))

	if placeholders == 0 {
		value := ""
		if len(parts) == 1 {
			value = parts[0].(*ast.StringLiteral).Value
		}
		return &ast.StringLiteral{Value: value, Pos: ast.Span(tok.Span)}, nil
	}
	return &ast.InterpolatedString{Parts: parts, Pos: ast.Span(tok.Span)}, nil
}

// embeddedExpression lexes and parses the text of one {expr}. offset is the
// source position of the first byte of text.
func (p *parser) embeddedExpression(text string, offset int) (ast.Expression, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, p.interpolationError(offset+lexErr.Location.Start, offset+lexErr.Location.End,
				lexErr.Message()+" in string interpolation", "")
		}
		return nil, err
	}
	for i := range tokens {
		tokens[i].Span.Start += offset
		tokens[i].Span.End += offset
	}

	sub := newParser(tokens, p.config)
	expr, err := sub.expression()
	p.debugEvents = append(p.debugEvents, sub.debugEvents...)
	if err != nil {
		return nil, err
	}
	if !sub.at(lexer.EOF) {
		return nil, sub.errorExpected("'}'", "to close string interpolation")
	}
	return expr, nil
}

func (p *parser) interpolationError(start, end int, msg, suggestion string) *ParseError {
	return &ParseError{
		Filename:   p.config.filename,
		Msg:        msg,
		Suggestion: suggestion,
		Location:   lexer.Span{Start: start, End: end},
		Src:        p.config.source,
	}
}

// matchingBrace returns the index of the '}' closing the '{' at open, or -1.
// Braces inside single-quoted strings do not count.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		case '\'':
			for i++; i < len(s) && s[i] != '\''; i++ {
				if s[i] == '\\' {
					i++
				}
			}
		}
	}
	return -1
}

// scanName returns the end of a $name reference starting at start. A dot
// joins qualified names only when a name character follows it.
func scanName(s string, start int) int {
	i := start
	for i < len(s) {
		switch {
		case isNamePart(s[i]):
			i++
		case s[i] == '.' && i+1 < len(s) && isNamePart(s[i+1]):
			i++
		default:
			return i
		}
	}
	return i
}

func unescape(ch byte) string {
	switch ch {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	}
	return string(ch)
}

func isNameStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isNamePart(ch byte) bool {
	return isNameStart(ch) || ('0' <= ch && ch <= '9')
}
