package lexer

import (
	"fmt"
)

// TokenType represents the type of token in Shard
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENTIFIER    // names, keywords, qualified names (a.b)
	INTEGER       // 42, 007
	BOOLEAN       // true, false
	NULL          // null
	STRING        // 'single quoted'
	INTERP_STRING // "double quoted with $name and {expr}"

	// Arithmetic
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /
	MODULO   // %

	// Comparison and assignment
	EQUALS // =
	EQ_EQ  // ==
	NOT_EQ // !=
	LT     // <
	GT     // >
	LT_EQ  // <=
	GT_EQ  // >=

	// Logical
	AND // and
	OR  // or
	NOT // not

	// Delimiters
	LPAREN  // (
	RPAREN  // )
	LSQUARE // [
	RSQUARE // ]
	LBRACE  // {
	RBRACE  // }
	COMMA   // ,
	COLON   // :
	ARROW   // ->

	// Structure
	NEWLINE // \n
	COMMENT // # ...
)

var tokenNames = [...]string{
	EOF:           "EOF",
	ILLEGAL:       "ILLEGAL",
	IDENTIFIER:    "IDENTIFIER",
	INTEGER:       "INTEGER",
	BOOLEAN:       "BOOLEAN",
	NULL:          "NULL",
	STRING:        "STRING",
	INTERP_STRING: "INTERP_STRING",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	MULTIPLY:      "MULTIPLY",
	DIVIDE:        "DIVIDE",
	MODULO:        "MODULO",
	EQUALS:        "EQUALS",
	EQ_EQ:         "EQ_EQ",
	NOT_EQ:        "NOT_EQ",
	LT:            "LT",
	GT:            "GT",
	LT_EQ:         "LT_EQ",
	GT_EQ:         "GT_EQ",
	AND:           "AND",
	OR:            "OR",
	NOT:           "NOT",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	LSQUARE:       "LSQUARE",
	RSQUARE:       "RSQUARE",
	LBRACE:        "LBRACE",
	RBRACE:        "RBRACE",
	COMMA:         "COMMA",
	COLON:         "COLON",
	ARROW:         "ARROW",
	NEWLINE:       "NEWLINE",
	COMMENT:       "COMMENT",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) && int(t) >= 0 {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// symbols holds the fixed source text of operator and delimiter tokens
var symbols = map[TokenType]string{
	PLUS:     "+",
	MINUS:    "-",
	MULTIPLY: "*",
	DIVIDE:   "/",
	MODULO:   "%",
	EQUALS:   "=",
	EQ_EQ:    "==",
	NOT_EQ:   "!=",
	LT:       "<",
	GT:       ">",
	LT_EQ:    "<=",
	GT_EQ:    ">=",
	AND:      "and",
	OR:       "or",
	NOT:      "not",
	LPAREN:   "(",
	RPAREN:   ")",
	LSQUARE:  "[",
	RSQUARE:  "]",
	LBRACE:   "{",
	RBRACE:   "}",
	COMMA:    ",",
	COLON:    ":",
	ARROW:    "->",
	NEWLINE:  "\n",
}

// Span is a half-open byte range [Start, End) in the source text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token is a single lexical unit. Text is set for identifiers, literals and
// comments; operators and delimiters carry their fixed symbol only.
type Token struct {
	Type TokenType
	Span Span
	Text string
}

// Symbol returns the source-level spelling of the token
func (t Token) Symbol() string {
	if t.Text != "" {
		return t.Text
	}
	if s, ok := symbols[t.Type]; ok {
		return s
	}
	return ""
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// IsWord reports whether the token is an identifier with exactly the given text.
// Keywords are plain identifiers, so the parser dispatches on this.
func (t Token) IsWord(text string) bool {
	return t.Type == IDENTIFIER && t.Text == text
}

// Adjacent reports whether next starts exactly where t ends.
func (t Token) Adjacent(next Token) bool {
	return t.Span.End == next.Span.Start
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case IDENTIFIER, INTEGER, BOOLEAN, NULL:
		return fmt.Sprintf("%s(%s)", t.Type, t.Text)
	case STRING:
		return fmt.Sprintf("%s('%s')", t.Type, t.Text)
	case INTERP_STRING:
		return fmt.Sprintf("%s(%q)", t.Type, t.Text)
	case COMMENT:
		return fmt.Sprintf("%s(#%s)", t.Type, t.Text)
	default:
		return fmt.Sprintf("%s(%s)", t.Type, t.Symbol())
	}
}

// Describe returns a human readable name for error messages ("identifier 'x'", "'{'")
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case NEWLINE:
		return "newline"
	case IDENTIFIER:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case INTEGER:
		return fmt.Sprintf("integer %s", t.Text)
	case BOOLEAN, NULL:
		return fmt.Sprintf("'%s'", t.Text)
	case STRING, INTERP_STRING:
		return "string literal"
	case COMMENT:
		return "comment"
	default:
		return fmt.Sprintf("'%s'", t.Symbol())
	}
}

// Keywords maps reserved words that get their own token type.
// Control-flow words (if, while, fn, ...) are not here: they stay IDENTIFIER.
var Keywords = map[string]TokenType{
	"true":  BOOLEAN,
	"false": BOOLEAN,
	"null":  NULL,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
}

// ControlWords lists the identifiers the parser treats as statement keywords
var ControlWords = []string{
	"if", "else", "while", "for", "in", "fn", "return", "try", "catch", "break", "continue",
}
