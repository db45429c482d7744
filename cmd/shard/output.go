package main

import (
	"os"

	"github.com/shard-lang/shard/pkgs/errors"
)

// writeScript writes script to path, 0755 when executable is set and 0644
// otherwise. An existing file keeps its content until the write succeeds
// in a sibling temp file.
func writeScript(path, script string, executable bool) error {
	mode := os.FileMode(0o644)
	if executable {
		mode = 0o755
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(script), mode); err != nil {
		return errors.Wrap(errors.ErrIO, "error writing "+path, err)
	}
	// WriteFile leaves the mode of an existing file alone
	if err := os.Chmod(tmp, mode); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrIO, "error writing "+path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrIO, "error writing "+path, err)
	}
	return nil
}
