package parser

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/shard-lang/shard/pkgs/errors"
	"github.com/shard-lang/shard/pkgs/lexer"
)

// ParseError describes the first malformed construct found
type ParseError struct {
	Filename   string
	Msg        string     // what went wrong
	Context    string     // construct being parsed ("if condition", "array literal")
	Expected   string     // what was expected, if known
	Got        string     // description of the token found
	Suggestion string     // how to fix it
	Location   lexer.Span // offending token
	Src        string     // empty unless the parser was given WithSource
}

// Error returns "file:line:col: message" (or the byte offset when the
// source is unknown) followed by a snippet when the source is available.
func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		b.WriteString(e.Filename)
		b.WriteString(":")
	}
	if e.Src != "" {
		line, col := errors.LineCol(e.Src, e.Location.Start)
		fmt.Fprintf(&b, "%d:%d: ", line, col)
	} else {
		fmt.Fprintf(&b, "offset %d: ", e.Location.Start)
	}
	b.WriteString(e.Message())

	if e.Src != "" {
		b.WriteString("\n")
		b.WriteString(errors.Snippet(e.Src, e.Location.Start, e.Location.End, nil, nil))
	}
	if e.Suggestion != "" {
		b.WriteString("help: ")
		b.WriteString(e.Suggestion)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Message is the human readable description without location
func (e *ParseError) Message() string {
	msg := e.Msg
	if msg == "" && e.Expected != "" {
		msg = "expected " + e.Expected
		if e.Context != "" {
			msg += " " + e.Context
		}
	}
	if e.Got != "" {
		msg += ", got " + e.Got
	}
	return msg
}

// Source returns the source text, or "" when it was not provided
func (e *ParseError) Source() string {
	return e.Src
}

// Span returns the offending byte range
func (e *ParseError) Span() (int, int) {
	return e.Location.Start, e.Location.End
}

// Hint returns the suggestion, if any
func (e *ParseError) Hint() string {
	return e.Suggestion
}

// errorAt builds an error pointing at tok
func (p *parser) errorAt(tok lexer.Token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Filename: p.config.filename,
		Msg:      fmt.Sprintf(format, args...),
		Location: tok.Span,
		Src:      p.config.source,
	}
}

// errorExpected builds an "expected X context, got Y" error at the current token
func (p *parser) errorExpected(expected, context string) *ParseError {
	tok := p.current()
	return &ParseError{
		Filename: p.config.filename,
		Expected: expected,
		Context:  context,
		Got:      tok.Describe(),
		Location: tok.Span,
		Src:      p.config.source,
	}
}

// describeOffset renders an offset as line:col when the source is known
func (p *parser) describeOffset(offset int) string {
	if p.config.source == "" {
		return fmt.Sprintf("offset %d", offset)
	}
	line, col := errors.LineCol(p.config.source, offset)
	return fmt.Sprintf("%d:%d", line, col)
}

// closestWord returns the control word closest to text, or "" if nothing
// is plausibly a misspelling of it.
func closestWord(text string, candidates []string) string {
	if len(text) < 3 {
		return ""
	}
	for _, c := range candidates {
		if c == text {
			return ""
		}
	}

	ranks := fuzzy.RankFindFold(text, candidates)
	if len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		return best.Target
	}

	best, bestDistance := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(text), c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
