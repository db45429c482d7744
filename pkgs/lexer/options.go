package lexer

import (
	"time"

	"github.com/rs/zerolog"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing
)

// DebugLevel controls debug tracing
type DebugLevel int

const (
	DebugOff      DebugLevel = iota // No debug info (default)
	DebugDetailed                   // One event per token
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
	logger    zerolog.Logger
}

// WithTelemetryBasic enables per-type token counts
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables token counts and per-type timing
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugDetailed records a debug event for every token produced
func WithDebugDetailed() LexerOpt {
	return func(c *LexerConfig) {
		c.debug = DebugDetailed
	}
}

// WithLogger sends debug events to logger at trace level
func WithLogger(logger zerolog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// TokenTelemetry holds per-token type telemetry
type TokenTelemetry struct {
	Type      TokenType
	Count     int
	TotalTime time.Duration
}

// DebugEvent holds debug tracing information
type DebugEvent struct {
	Timestamp time.Time
	Event     string // "token", "error"
	Position  int    // Byte offset where the event happened
	Context   string
}
