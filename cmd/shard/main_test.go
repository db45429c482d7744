package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shard-lang/shard/pkgs/errors"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin io.Reader, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--no-color"}, args...), stdin, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildToStdout(t *testing.T) {
	input := writeFile(t, t.TempDir(), "main.shard", "x = 10\necho x\n")

	res := runCLI(t, nil, "--input", input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "#!/bin/sh\n# Generated by Shard\n"))
	assert.Contains(t, res.stdout, "__shard_x=10")
	assert.Contains(t, res.stdout, "__shard_status=$?")
}

func TestBuildPositionalInput(t *testing.T) {
	input := writeFile(t, t.TempDir(), "main.shard", "name = 'Shard'")

	res := runCLI(t, nil, input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "__shard_name='Shard'")
}

func TestBuildFromStdin(t *testing.T) {
	res := runCLI(t, strings.NewReader("ls -la /home"))
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ls -la /home\n__shard_status=$?\n")

	res = runCLI(t, strings.NewReader("x = 1"), "--input", "-")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "__shard_x=1")
}

func TestBuildToOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "main.shard", "x = 10")
	output := filepath.Join(dir, "out.sh")

	res := runCLI(t, nil, "--input", input, "--output", output)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Written to "+output+"\n", res.stdout)

	script, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(script), "__shard_x=10")

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestBuildCheckAlsoPrints(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "main.shard", "x = 10")
	output := filepath.Join(dir, "out.sh")

	res := runCLI(t, nil, "--input", input, "--output", output, "--check")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Written to "+output)
	assert.Contains(t, res.stdout, "__shard_x=10")
}

func TestBuildNonExecutable(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "main.shard", "x = 1")
	output := filepath.Join(dir, "out.sh")

	res := runCLI(t, nil, input, "-o", output, "--executable=false")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestMissingInput(t *testing.T) {
	res := runCLI(t, nil)
	assert.Equal(t, ExitInvalidArguments, res.code)
	assert.Equal(t, "Error: No input file specified. Use --input <file>\n", res.stderr)
}

func TestUnreadableInput(t *testing.T) {
	res := runCLI(t, nil, "--input", filepath.Join(t.TempDir(), "missing.shard"))
	assert.Equal(t, ExitIOError, res.code)
	assert.Contains(t, res.stderr, "error reading file")
}

func TestLexicalErrorRendersDiagnostic(t *testing.T) {
	input := writeFile(t, t.TempDir(), "bad.shard", "x = @#$")

	res := runCLI(t, nil, input)
	assert.Equal(t, ExitParseError, res.code)
	assert.Contains(t, res.stderr, "bad.shard\n")
	assert.Contains(t, res.stderr, "error: unexpected character '@'")
	assert.Contains(t, res.stderr, " --> 1:5")
	assert.Contains(t, res.stderr, "1 | x = @#$")
}

func TestParseErrorRendersDiagnostic(t *testing.T) {
	input := writeFile(t, t.TempDir(), "bad.shard", "if x {\n  echo x\n")

	res := runCLI(t, nil, input)
	assert.Equal(t, ExitParseError, res.code)
	assert.Contains(t, res.stderr, "error:")
	assert.Contains(t, res.stderr, "help:")
	assert.Empty(t, res.stdout)
}

func TestIndentFromEnvironment(t *testing.T) {
	t.Setenv("SHARD_INDENT", "\t")
	input := writeFile(t, t.TempDir(), "loop.shard", "while true {\n  break\n}\n")

	res := runCLI(t, nil, input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "while true; do\n\tbreak\ndone\n")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "main.shard", "x = 1")
	output := filepath.Join(dir, "from-config.sh")
	config := writeFile(t, dir, "shard.yaml", "output: "+output+"\nexecutable: false\n")

	res := runCLI(t, nil, "--config", config, input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Written to "+output+"\n", res.stdout)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "main.shard", "x = 1")
	config := writeFile(t, dir, "shard.yaml", "output: "+filepath.Join(dir, "ignored.sh")+"\n")
	output := filepath.Join(dir, "flag.sh")

	res := runCLI(t, nil, "--config", config, "-o", output, input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.FileExists(t, output)
	assert.NoFileExists(t, filepath.Join(dir, "ignored.sh"))
}

func TestMissingConfigFile(t *testing.T) {
	input := writeFile(t, t.TempDir(), "main.shard", "x = 1")
	res := runCLI(t, nil, "--config", "/nonexistent/shard.yaml", input)
	assert.Equal(t, ExitInvalidArguments, res.code)
	assert.Contains(t, res.stderr, "reading config")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.shard", "x = 1")
	lexBad := writeFile(t, dir, "lex.shard", "x = @")
	parseBad := writeFile(t, dir, "parse.shard", "if {")

	res := runCLI(t, nil, "check", good)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "1 file(s) OK\n", res.stdout)

	res = runCLI(t, nil, "check", good, lexBad, parseBad)
	assert.Equal(t, ExitParseError, res.code)
	assert.Contains(t, res.stderr, lexBad)
	assert.Contains(t, res.stderr, parseBad)
	assert.Equal(t, 2, strings.Count(res.stderr, "error:"))
}

func TestCheckMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.shard", "x = 1")

	res := runCLI(t, nil, "check", good, filepath.Join(dir, "missing.shard"))
	assert.Equal(t, ExitIOError, res.code)
	assert.Contains(t, res.stderr, "missing.shard")
}

func TestASTCommand(t *testing.T) {
	input := writeFile(t, t.TempDir(), "main.shard", "x = 10")

	res := runCLI(t, nil, "ast", input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Program\n└─ Assignment x\n   └─ IntegerLiteral 10\n", res.stdout)

	res = runCLI(t, nil, "ast", "--format", "json", input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"type": "Assignment"`)

	res = runCLI(t, nil, "ast", "-f", "cbor", input)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.NotEmpty(t, res.stdout)

	res = runCLI(t, nil, "ast", "--format", "xml", input)
	assert.Equal(t, ExitInvalidArguments, res.code)
	assert.Contains(t, res.stderr, `unknown output format "xml"`)
}

func TestVersion(t *testing.T) {
	res := runCLI(t, nil, "version")
	require.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, "shard dev\n", res.stdout)
}

func TestUnknownFlag(t *testing.T) {
	res := runCLI(t, nil, "--bogus")
	assert.Equal(t, ExitInvalidArguments, res.code)
	assert.Contains(t, res.stderr, "unknown flag")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"input", errors.New(errors.ErrInput, "no input"), ExitInvalidArguments},
		{"io", errors.Wrap(errors.ErrIO, "read", assert.AnError), ExitIOError},
		{"lexical", errors.Wrap(errors.ErrLexical, "", assert.AnError), ExitParseError},
		{"parse", errors.Wrap(errors.ErrParse, "", assert.AnError), ExitParseError},
		{"codegen", errors.Wrap(errors.ErrCodegen, "", assert.AnError), ExitGenerationError},
		{"plain", assert.AnError, ExitInvalidArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestWatchRebuildsOnWrite(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "main.shard", "x = 1")

	w, err := newFileWatcher(input, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func() { changed <- struct{}{} })
	}()

	writeFile(t, dir, "other.shard", "ignored")
	writeFile(t, dir, "main.shard", "x = 2")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after writing the input file")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, shouldUseColor(true, &buf))
	assert.False(t, shouldUseColor(false, &buf), "buffers are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, shouldUseColor(false, os.Stdout))
}
