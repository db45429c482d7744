package lexer

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// ASCII character lookup tables for fast classification
var (
	isWhitespace     [128]bool // newline excluded, it is a token
	isLetter         [128]bool
	isDigit          [128]bool
	isIdentStart     [128]bool
	isIdentPart      [128]bool
	singleCharTokens [128]TokenType
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = isLetter[i] || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i] || ch == '.'
		singleCharTokens[i] = ILLEGAL
	}

	singleCharTokens['+'] = PLUS
	singleCharTokens['*'] = MULTIPLY
	singleCharTokens['/'] = DIVIDE
	singleCharTokens['%'] = MODULO
	singleCharTokens['('] = LPAREN
	singleCharTokens[')'] = RPAREN
	singleCharTokens['['] = LSQUARE
	singleCharTokens[']'] = RSQUARE
	singleCharTokens['{'] = LBRACE
	singleCharTokens['}'] = RBRACE
	singleCharTokens[','] = COMMA
	singleCharTokens[':'] = COLON
}

// Lexer turns Shard source into tokens, one per NextToken call.
// It never rewinds; call Init to restart on new input.
type Lexer struct {
	input  string
	pos    int
	done   bool  // EOF already produced
	err    error // sticky lexical error
	logger zerolog.Logger

	telemetryMode  TelemetryMode
	tokenTelemetry map[TokenType]*TokenTelemetry

	debugLevel  DebugLevel
	debugEvents []DebugEvent
}

// New creates a lexer for input with optional configuration
func New(input string, opts ...LexerOpt) *Lexer {
	config := &LexerConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(config)
	}

	l := &Lexer{
		logger:        config.logger,
		telemetryMode: config.telemetry,
		debugLevel:    config.debug,
	}

	if config.telemetry > TelemetryOff {
		l.tokenTelemetry = make(map[TokenType]*TokenTelemetry)
	}
	if config.debug > DebugOff {
		l.debugEvents = make([]DebugEvent, 0, 64)
	}

	l.Init(input)
	return l
}

// Init resets the lexer with new input
func (l *Lexer) Init(input string) {
	l.input = input
	l.pos = 0
	l.done = false
	l.err = nil

	for k := range l.tokenTelemetry {
		delete(l.tokenTelemetry, k)
	}
	if l.debugEvents != nil {
		l.debugEvents = l.debugEvents[:0]
	}
}

// Tokenize scans the whole input and returns every token, ending with EOF
func Tokenize(input string, opts ...LexerOpt) ([]Token, error) {
	return New(input, opts...).Tokenize()
}

// Tokenize collects the remaining tokens up to and including EOF
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input)/3+1)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token. After the input is exhausted it keeps
// returning EOF; after a lexical error it keeps returning that error.
func (l *Lexer) NextToken() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	if l.done {
		return l.eof(), nil
	}

	var start time.Time
	if l.telemetryMode >= TelemetryTiming {
		start = time.Now()
	}

	tok, err := l.lexToken()
	if err != nil {
		l.err = err
		l.recordDebugEvent("error", err.Error())
		return Token{}, err
	}
	if tok.Type == EOF {
		l.done = true
	}

	if l.telemetryMode > TelemetryOff {
		var elapsed time.Duration
		if l.telemetryMode >= TelemetryTiming {
			elapsed = time.Since(start)
		}
		l.recordTokenTelemetry(tok.Type, elapsed)
	}
	if l.debugLevel >= DebugDetailed {
		l.recordDebugEvent("token", tok.String())
	}
	return tok, nil
}

// GetTokenTelemetry returns a copy of the per-type telemetry, nil when disabled
func (l *Lexer) GetTokenTelemetry() map[TokenType]*TokenTelemetry {
	if l.telemetryMode == TelemetryOff || l.tokenTelemetry == nil {
		return nil
	}

	result := make(map[TokenType]*TokenTelemetry, len(l.tokenTelemetry))
	for k, v := range l.tokenTelemetry {
		telemetryCopy := *v
		result[k] = &telemetryCopy
	}
	return result
}

// GetDebugEvents returns a copy of the recorded debug events, nil when disabled
func (l *Lexer) GetDebugEvents() []DebugEvent {
	if l.debugLevel == DebugOff || l.debugEvents == nil {
		return nil
	}

	result := make([]DebugEvent, len(l.debugEvents))
	copy(result, l.debugEvents)
	return result
}

func (l *Lexer) recordTokenTelemetry(tokenType TokenType, elapsed time.Duration) {
	telemetry, exists := l.tokenTelemetry[tokenType]
	if !exists {
		telemetry = &TokenTelemetry{Type: tokenType}
		l.tokenTelemetry[tokenType] = telemetry
	}
	telemetry.Count++
	telemetry.TotalTime += elapsed
}

func (l *Lexer) recordDebugEvent(event, context string) {
	if l.debugLevel == DebugOff {
		return
	}
	l.debugEvents = append(l.debugEvents, DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		Position:  l.pos,
		Context:   context,
	})
	l.logger.Trace().Str("event", event).Int("pos", l.pos).Msg(context)
}

func (l *Lexer) eof() Token {
	n := len(l.input)
	return Token{Type: EOF, Span: Span{Start: n, End: n}}
}

// lexToken scans exactly one token starting at the current position
func (l *Lexer) lexToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return l.eof(), nil
	}

	start := l.pos
	ch := l.input[l.pos]

	if ch >= utf8.RuneSelf {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if unicode.IsLetter(r) {
			return l.lexIdentifier(), nil
		}
		return Token{}, l.unexpected(r, Span{Start: start, End: start + size})
	}

	switch {
	case ch == '\n':
		l.pos++
		return Token{Type: NEWLINE, Span: Span{Start: start, End: l.pos}}, nil
	case ch == '#':
		return l.lexComment(), nil
	case ch == '\'':
		return l.lexSingleQuoted()
	case ch == '"':
		return l.lexDoubleQuoted(), nil
	case isDigit[ch]:
		return l.lexInteger(), nil
	case isIdentStart[ch]:
		return l.lexIdentifier(), nil
	}

	switch ch {
	case '=':
		return l.lexOperator(EQUALS, '=', EQ_EQ), nil
	case '<':
		return l.lexOperator(LT, '=', LT_EQ), nil
	case '>':
		return l.lexOperator(GT, '=', GT_EQ), nil
	case '-':
		return l.lexOperator(MINUS, '>', ARROW), nil
	case '!':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Type: NOT_EQ, Span: Span{Start: start, End: l.pos}}, nil
		}
		return Token{}, l.unexpected('!', Span{Start: start, End: start + 1})
	}

	if tt := singleCharTokens[ch]; tt != ILLEGAL {
		l.pos++
		return Token{Type: tt, Span: Span{Start: start, End: l.pos}}, nil
	}

	return Token{}, l.unexpected(rune(ch), Span{Start: start, End: start + 1})
}

// lexOperator emits double when the next byte is second, otherwise single
func (l *Lexer) lexOperator(single TokenType, second byte, double TokenType) Token {
	start := l.pos
	if l.peek(1) == second {
		l.pos += 2
		return Token{Type: double, Span: Span{Start: start, End: l.pos}}
	}
	l.pos++
	return Token{Type: single, Span: Span{Start: start, End: l.pos}}
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch < utf8.RuneSelf {
			if !isWhitespace[ch] {
				return
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == '\n' || !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) lexComment() Token {
	start := l.pos
	l.pos++ // '#'
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	return Token{Type: COMMENT, Span: Span{Start: start, End: l.pos}, Text: l.input[start+1 : l.pos]}
}

func (l *Lexer) lexInteger() Token {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] < utf8.RuneSelf && isDigit[l.input[l.pos]] {
		l.pos++
	}
	return Token{Type: INTEGER, Span: Span{Start: start, End: l.pos}, Text: l.input[start:l.pos]}
}

func (l *Lexer) lexIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch < utf8.RuneSelf {
			if !isIdentPart[ch] {
				break
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}

	text := l.input[start:l.pos]
	return Token{Type: lookupKeyword(text), Span: Span{Start: start, End: l.pos}, Text: text}
}

// lookupKeyword returns the token type for reserved words, or IDENTIFIER
func lookupKeyword(text string) TokenType {
	if tt, ok := Keywords[text]; ok {
		return tt
	}
	return IDENTIFIER
}

// lexSingleQuoted decodes backslash escapes; the escaped character is taken literally
func (l *Lexer) lexSingleQuoted() (Token, error) {
	start := l.pos
	l.pos++ // opening quote

	var value strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, l.unterminated(start)
		}
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		switch r {
		case '\'':
			l.pos += size
			return Token{Type: STRING, Span: Span{Start: start, End: l.pos}, Text: value.String()}, nil
		case '\\':
			l.pos += size
			if l.pos >= len(l.input) {
				return Token{}, l.unterminated(start)
			}
			r, size = utf8.DecodeRuneInString(l.input[l.pos:])
		}
		value.WriteRune(r)
		l.pos += size
	}
}

// lexDoubleQuoted keeps the payload verbatim for the parser's interpolation
// splitter. Escape pairs are skipped over so \" does not close the string.
// A raw newline or end of input ends the string without an error.
func (l *Lexer) lexDoubleQuoted() Token {
	start := l.pos
	l.pos++ // opening quote
	contentStart := l.pos

	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '"':
			text := l.input[contentStart:l.pos]
			l.pos++
			return Token{Type: INTERP_STRING, Span: Span{Start: start, End: l.pos}, Text: text}
		case '\n':
			return Token{Type: INTERP_STRING, Span: Span{Start: start, End: l.pos}, Text: l.input[contentStart:l.pos]}
		case '\\':
			if l.pos+1 < len(l.input) && l.input[l.pos+1] != '\n' {
				l.pos += 2
				continue
			}
		}
		l.pos++
	}

	return Token{Type: INTERP_STRING, Span: Span{Start: start, End: l.pos}, Text: l.input[contentStart:l.pos]}
}

func (l *Lexer) unexpected(found rune, span Span) error {
	return &Error{Kind: UnexpectedChar, Found: found, Src: l.input, Location: span}
}

func (l *Lexer) unterminated(start int) error {
	return &Error{Kind: UnterminatedString, Src: l.input, Location: Span{Start: start, End: len(l.input)}}
}
