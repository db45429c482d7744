// Package compiler runs the Shard pipeline: lex, parse, generate.
//
// Each stage fails fast. Stage errors are wrapped in an errors.ShardError
// tagged with the stage kind; the original *lexer.Error, *parser.ParseError
// or *generator.Error stays reachable through errors.As.
package compiler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/shard-lang/shard/pkgs/ast"
	"github.com/shard-lang/shard/pkgs/errors"
	"github.com/shard-lang/shard/pkgs/generator"
	"github.com/shard-lang/shard/pkgs/lexer"
	"github.com/shard-lang/shard/pkgs/parser"
)

// CompilerOpt represents a compiler configuration option
type CompilerOpt func(*CompilerConfig)

// CompilerConfig holds compiler configuration
type CompilerConfig struct {
	filename string
	indent   string
	trace    bool
	logger   zerolog.Logger
}

// WithFilename names the source in diagnostics and log lines
func WithFilename(name string) CompilerOpt {
	return func(c *CompilerConfig) {
		c.filename = name
	}
}

// WithIndent sets the indentation unit of the generated script
func WithIndent(indent string) CompilerOpt {
	return func(c *CompilerConfig) {
		c.indent = indent
	}
}

// WithLogger sends stage summaries to logger at debug level
func WithLogger(logger zerolog.Logger) CompilerOpt {
	return func(c *CompilerConfig) {
		c.logger = logger
	}
}

// WithTrace turns on per-token and per-routine trace events in the lexer
// and parser; they are logged at trace level
func WithTrace() CompilerOpt {
	return func(c *CompilerConfig) {
		c.trace = true
	}
}

func newConfig(opts []CompilerOpt) *CompilerConfig {
	config := &CompilerConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(config)
	}
	if config.filename != "" {
		config.logger = config.logger.With().Str("file", config.filename).Logger()
	}
	return config
}

// StageTimings records how long each stage took
type StageTimings struct {
	Lex      time.Duration
	Parse    time.Duration
	Generate time.Duration
}

// Total is the time spent in all stages
func (t StageTimings) Total() time.Duration {
	return t.Lex + t.Parse + t.Generate
}

// Result is the output of one compilation
type Result struct {
	Program *ast.Program
	Script  string
	Tokens  int
	Timings StageTimings
}

// Compile translates Shard source into a POSIX sh script
func Compile(source string, opts ...CompilerOpt) (string, error) {
	result, err := CompileDetailed(source, opts...)
	if err != nil {
		return "", err
	}
	return result.Script, nil
}

// CompileDetailed is Compile that also returns the tree and stage timings
func CompileDetailed(source string, opts ...CompilerOpt) (*Result, error) {
	config := newConfig(opts)
	result := &Result{}

	if err := config.front(source, result); err != nil {
		return nil, err
	}

	start := time.Now()
	script, err := generator.Generate(result.Program, config.generatorOpts()...)
	if err != nil {
		return nil, config.stageError(errors.ErrCodegen, err)
	}
	result.Timings.Generate = time.Since(start)
	result.Script = script

	config.logger.Debug().
		Int("bytes", len(script)).
		Dur("elapsed", result.Timings.Generate).
		Msg("generated")
	config.logger.Debug().Dur("total", result.Timings.Total()).Msg("compiled")
	return result, nil
}

// Parse runs the lexer and parser only
func Parse(source string, opts ...CompilerOpt) (*ast.Program, error) {
	config := newConfig(opts)
	result := &Result{}
	if err := config.front(source, result); err != nil {
		return nil, err
	}
	return result.Program, nil
}

// front lexes and parses source into result
func (c *CompilerConfig) front(source string, result *Result) error {
	start := time.Now()
	tokens, err := lexer.Tokenize(source, c.lexerOpts()...)
	if err != nil {
		return c.stageError(errors.ErrLexical, err)
	}
	result.Tokens = len(tokens)
	result.Timings.Lex = time.Since(start)
	c.logger.Debug().
		Int("tokens", len(tokens)).
		Dur("elapsed", result.Timings.Lex).
		Msg("lexed")

	start = time.Now()
	prog, err := parser.Parse(tokens, c.parserOpts(source)...)
	if err != nil {
		return c.stageError(errors.ErrParse, err)
	}
	result.Program = prog
	result.Timings.Parse = time.Since(start)
	c.logger.Debug().
		Int("statements", len(prog.Statements)).
		Dur("elapsed", result.Timings.Parse).
		Msg("parsed")
	return nil
}

func (c *CompilerConfig) lexerOpts() []lexer.LexerOpt {
	opts := []lexer.LexerOpt{lexer.WithLogger(c.logger)}
	if c.trace {
		opts = append(opts, lexer.WithDebugDetailed())
	}
	return opts
}

func (c *CompilerConfig) parserOpts(source string) []parser.ParserOpt {
	opts := []parser.ParserOpt{parser.WithSource(source), parser.WithLogger(c.logger)}
	if c.filename != "" {
		opts = append(opts, parser.WithFilename(c.filename))
	}
	if c.trace {
		opts = append(opts, parser.WithDebugPaths())
	}
	return opts
}

func (c *CompilerConfig) generatorOpts() []generator.GeneratorOpt {
	opts := []generator.GeneratorOpt{generator.WithLogger(c.logger)}
	if c.indent != "" {
		opts = append(opts, generator.WithIndent(c.indent))
	}
	return opts
}

// stageError tags err with the stage it came from. The message is left
// empty so the stage error's own text is what gets printed.
func (c *CompilerConfig) stageError(kind errors.Kind, err error) error {
	c.logger.Debug().Err(err).Str("stage", string(kind)).Msg("compilation failed")
	wrapped := errors.Wrap(kind, "", err)
	if c.filename != "" {
		wrapped.WithContext("file", c.filename)
	}
	return wrapped
}
