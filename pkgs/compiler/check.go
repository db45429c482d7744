package compiler

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/shard-lang/shard/pkgs/errors"
)

// Source is one named input
type Source struct {
	Name string
	Text string
}

// CheckAll compiles every source and collects one error per failing
// source. Each source still stops at its first error. The returned error
// is a *multierror.Error, or nil when every source compiled.
func CheckAll(sources []Source, opts ...CompilerOpt) error {
	var result *multierror.Error
	for _, src := range sources {
		fileOpts := append(append([]CompilerOpt{}, opts...), WithFilename(src.Name))
		if _, err := Compile(src.Text, fileOpts...); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		result.ErrorFormat = formatCheckErrors
	}
	return result.ErrorOrNil()
}

// formatCheckErrors lists failures as "name: message", one per line
func formatCheckErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		msg := err.Error()
		if d, ok := errors.AsDiagnostic(err); ok {
			msg = d.Message()
		}
		name := "<input>"
		var se *errors.ShardError
		if errors.As(err, &se) {
			if file, ok := se.GetContext("file"); ok {
				name = fmt.Sprint(file)
			}
		}
		lines[i] = name + ": " + msg
	}
	return strings.Join(lines, "\n")
}
