package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/shard-lang/shard/pkgs/errors"
)

// Exit codes
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitParseError       = 3
	ExitGenerationError  = 4
)

// exitCode maps an error to the process exit status. For an aggregate
// the worst stage wins: codegen, then parse, then IO.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		code := ExitSuccess
		for _, e := range merr.Errors {
			if c := exitCode(e); c > code {
				code = c
			}
		}
		return code
	}

	switch errors.KindOf(err) {
	case errors.ErrIO:
		return ExitIOError
	case errors.ErrLexical, errors.ErrParse:
		return ExitParseError
	case errors.ErrCodegen:
		return ExitGenerationError
	default:
		return ExitInvalidArguments
	}
}

// report prints err to stderr and returns its exit code. Errors that point
// into source text are drawn as caret diagnostics.
func (a *app) report(err error) int {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			a.reportOne(e)
		}
	} else {
		a.reportOne(err)
	}
	return exitCode(err)
}

func (a *app) reportOne(err error) {
	if d, ok := errors.AsDiagnostic(err); ok {
		if file := errorFile(err); file != "" {
			_, _ = fmt.Fprintf(a.stderr, "%s\n", paint(a.color, color.Bold)(file))
		}
		errors.Render(a.stderr, d, a.color)
		return
	}
	_, _ = fmt.Fprintf(a.stderr, "%s %v\n", paint(a.color, color.FgRed, color.Bold)("Error:"), err)
}

// errorFile returns the input name attached by the compiler, if any
func errorFile(err error) string {
	var se *errors.ShardError
	if !errors.As(err, &se) {
		return ""
	}
	if file, ok := se.GetContext("file"); ok {
		return fmt.Sprint(file)
	}
	return ""
}
