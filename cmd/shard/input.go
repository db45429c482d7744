package main

import (
	"io"
	"os"

	"github.com/shard-lang/shard/pkgs/errors"
)

const stdinName = "<stdin>"

// source is one loaded input
type source struct {
	name string
	text string
}

// readSource loads path, or stdin when path is "-" or empty with data
// piped in. Any other empty path is a usage error.
func (a *app) readSource(path string) (source, error) {
	if path == "-" || (path == "" && hasPipedInput(a.stdin)) {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return source{}, errors.Wrap(errors.ErrIO, "error reading stdin", err)
		}
		return source{name: stdinName, text: string(data)}, nil
	}
	if path == "" {
		return source{}, errors.New(errors.ErrInput, "No input file specified. Use --input <file>")
	}
	return readFile(path)
}

func readFile(path string) (source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, errors.Wrap(errors.ErrIO, "error reading file "+path, err)
	}
	return source{name: path, text: string(data)}, nil
}

// hasPipedInput reports whether r is stdin with data redirected into it.
// Readers that are not files count as piped.
func hasPipedInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
