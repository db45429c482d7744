package errors

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Hinter is implemented by diagnostics that can suggest a fix
type Hinter interface {
	Hint() string
}

// LineCol converts a byte offset into a 1-based line and column (in runes).
// Offsets past the end clamp to the end of the source.
func LineCol(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	line := 1 + strings.Count(source[:offset], "\n")
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	col := 1 + utf8.RuneCountInString(source[lineStart:offset])
	return line, col
}

// Render writes a caret diagnostic in Rust/Clang style:
//
//	error: unexpected character '@'
//	 --> 1:5
//	  |
//	1 | x = @
//	  |     ^
func Render(w io.Writer, d Diagnostic, useColor bool) {
	red := color.New(color.FgRed, color.Bold)
	blue := color.New(color.FgBlue, color.Bold)
	yellow := color.New(color.FgYellow)
	if !useColor {
		red.DisableColor()
		blue.DisableColor()
		yellow.DisableColor()
	} else {
		red.EnableColor()
		blue.EnableColor()
		yellow.EnableColor()
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", red.Sprint("error:"), d.Message())

	source := d.Source()
	start, end := d.Span()
	if source != "" {
		_, _ = io.WriteString(w, Snippet(source, start, end, blue.Sprint, red.Sprint))
	}

	if h, ok := d.(Hinter); ok && h.Hint() != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", yellow.Sprint("help:"), h.Hint())
	}
}

// Snippet renders the location header, the offending source line and a caret
// run under the span. gutter and caret style the decorations.
func Snippet(source string, start, end int, gutter, caret func(...interface{}) string) string {
	if gutter == nil {
		gutter = fmt.Sprint
	}
	if caret == nil {
		caret = fmt.Sprint
	}

	line, col := LineCol(source, start)
	lines := strings.Split(source, "\n")
	lineContent := ""
	if line-1 < len(lines) {
		lineContent = lines[line-1]
	}

	// Caret width covers the span but stops at the end of the line
	width := 1
	if end > start {
		lineEnd := strings.IndexByte(source[clamp(start, len(source)):], '\n')
		stop := clamp(end, len(source))
		if lineEnd >= 0 && start+lineEnd < stop {
			stop = start + lineEnd
		}
		if n := utf8.RuneCountInString(source[clamp(start, len(source)):stop]); n > 1 {
			width = n
		}
	}

	num := fmt.Sprintf("%d", line)
	pad := strings.Repeat(" ", len(num))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s%s %d:%d\n", pad, gutter("-->"), line, col))
	b.WriteString(fmt.Sprintf("%s %s\n", pad, gutter("|")))
	b.WriteString(fmt.Sprintf("%s %s %s\n", gutter(num), gutter("|"), lineContent))
	b.WriteString(fmt.Sprintf("%s %s %s%s\n", pad, gutter("|"), strings.Repeat(" ", col-1), caret(strings.Repeat("^", width))))
	return b.String()
}

func clamp(n, max int) int {
	if n > max {
		return max
	}
	if n < 0 {
		return 0
	}
	return n
}
