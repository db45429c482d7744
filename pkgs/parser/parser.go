// Package parser builds a Shard syntax tree from tokens.
//
// It is a recursive-descent parser over statements with a
// precedence-climbing expression grammar. Keywords are identifier tokens;
// statement dispatch compares their text. The first error stops parsing.
package parser

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/invariant"
	"github.com/shard-lang/shard/pkgs/lexer"
)

// Result is a parsed program together with optional telemetry
type Result struct {
	Program     *ast.Program
	Telemetry   *ParseTelemetry // nil unless telemetry is enabled
	DebugEvents []DebugEvent    // nil unless debug is enabled
}

// Parse builds a program from a complete token sequence ending in EOF
func Parse(tokens []lexer.Token, opts ...ParserOpt) (*ast.Program, error) {
	result, err := ParseDetailed(tokens, opts...)
	if err != nil {
		return nil, err
	}
	return result.Program, nil
}

// ParseString tokenizes source and parses it. Lexical errors are returned
// unchanged (*lexer.Error).
func ParseString(source string, opts ...ParserOpt) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, append([]ParserOpt{WithSource(source)}, opts...)...)
}

// ParseDetailed is Parse with telemetry and debug events returned
func ParseDetailed(tokens []lexer.Token, opts ...ParserOpt) (*Result, error) {
	invariant.Precondition(len(tokens) > 0 && tokens[len(tokens)-1].Type == lexer.EOF,
		"token sequence must end with EOF")

	config := &ParserConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(config)
	}

	var start time.Time
	if config.telemetry >= TelemetryTiming {
		start = time.Now()
	}

	p := newParser(tokens, config)
	prog, err := p.program()

	result := &Result{Program: prog}
	if config.telemetry > TelemetryOff {
		result.Telemetry = &ParseTelemetry{TokenCount: len(tokens)}
		if prog != nil {
			result.Telemetry.StatementCount = len(prog.Statements)
		}
		if config.telemetry >= TelemetryTiming {
			result.Telemetry.ParseTime = time.Since(start)
		}
	}
	if config.debug > DebugOff {
		result.DebugEvents = p.debugEvents
	}

	return result, err
}

// parser holds parsing state over an indexable token buffer
type parser struct {
	tokens []lexer.Token
	pos    int
	config *ParserConfig

	debugEvents []DebugEvent
}

func newParser(tokens []lexer.Token, config *ParserConfig) *parser {
	return &parser{tokens: tokens, config: config}
}

// program parses top-level statements until EOF
func (p *parser) program() (*ast.Program, error) {
	stmts, err := p.statements()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.RBRACE) {
		return nil, p.errorAt(p.current(), "unexpected '}' with no open block")
	}
	invariant.Postcondition(p.at(lexer.EOF), "program must consume every token")

	return &ast.Program{
		Statements: stmts,
		Pos:        ast.Span{Start: 0, End: p.current().Span.End},
	}, nil
}

// ========== Token helpers ==========

// current returns the token at the cursor. The cursor never moves past EOF.
func (p *parser) current() lexer.Token {
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead, clamped to EOF
func (p *parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

func (p *parser) atWord(text string) bool {
	return p.current().IsWord(text)
}

// expect consumes a token of type tt or fails with "expected <what> <context>"
func (p *parser) expect(tt lexer.TokenType, what, context string) (lexer.Token, error) {
	if !p.at(tt) {
		return lexer.Token{}, p.errorExpected(what, context)
	}
	return p.advance(), nil
}

// lastEnd is the end offset of the most recently consumed token
func (p *parser) lastEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].Span.End
}

// spanFrom covers start up to the last consumed token
func (p *parser) spanFrom(start int) ast.Span {
	return ast.Span{Start: start, End: p.lastEnd()}
}

// skipTrivia skips newlines and comments
func (p *parser) skipTrivia() {
	for p.at(lexer.NEWLINE) || p.at(lexer.COMMENT) {
		p.advance()
	}
}

// atStatementEnd reports whether the current token ends a statement
func (p *parser) atStatementEnd() bool {
	switch p.current().Type {
	case lexer.NEWLINE, lexer.COMMENT, lexer.RBRACE, lexer.EOF:
		return true
	}
	return false
}

// endStatement requires a statement terminator and consumes a newline
func (p *parser) endStatement(context string) error {
	if !p.atStatementEnd() {
		return p.errorExpected("end of statement", context)
	}
	if p.at(lexer.NEWLINE) {
		p.advance()
	}
	return nil
}

func (p *parser) trace(event string) {
	if p.config.debug == DebugOff {
		return
	}
	ev := DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		TokenPos:  p.pos,
		Context:   p.current().String(),
	}
	p.debugEvents = append(p.debugEvents, ev)
	p.config.logger.Trace().Str("event", event).Int("pos", p.pos).Msg(ev.Context)
}
