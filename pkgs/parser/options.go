package parser

import (
	"time"

	"github.com/rs/zerolog"
)

// ParserOpt represents a parser configuration option
type ParserOpt func(*ParserConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token and statement counts
	TelemetryTiming                      // Counts + parse time
)

// DebugLevel controls debug tracing
type DebugLevel int

const (
	DebugOff   DebugLevel = iota // No debug info (default)
	DebugPaths                   // Enter/exit of each parse routine
)

// ParserConfig holds parser configuration
type ParserConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
	source    string
	filename  string
	logger    zerolog.Logger
}

// WithSource attaches the source text so errors can render a snippet
func WithSource(source string) ParserOpt {
	return func(c *ParserConfig) {
		c.source = source
	}
}

// WithFilename names the input in error messages
func WithFilename(name string) ParserOpt {
	return func(c *ParserConfig) {
		c.filename = name
	}
}

// WithTelemetryBasic enables token and statement counts
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables counts and timing
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths records entry into every parse routine
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithLogger sends debug events to logger at trace level
func WithLogger(logger zerolog.Logger) ParserOpt {
	return func(c *ParserConfig) {
		c.logger = logger
	}
}

// ParseTelemetry holds parser metrics
type ParseTelemetry struct {
	ParseTime      time.Duration
	TokenCount     int
	StatementCount int // top-level statements
}

// DebugEvent holds debug tracing information
type DebugEvent struct {
	Timestamp time.Time
	Event     string // "enter_ifStmt", "enter_primary", ...
	TokenPos  int
	Context   string
}
