package generator

import (
	"fmt"
	"strings"
)

// Prefix of every source-level variable
const varPrefix = "__shard_"

// Prefix of the script's own bookkeeping variables. No source name maps
// onto it since every source variable starts with varPrefix.
const runtimePrefix = "__shardrt_"

const (
	statusVar = varPrefix + "status"
	returnVar = runtimePrefix + "ret"
)

// varName maps a source variable to its shell variable: x -> __shard_x,
// config.port -> __shard_config_x2e_port
func varName(name string) string {
	return varPrefix + sanitizeIdentifier(name)
}

// funcName maps a source function name to a valid shell function name
func funcName(name string) string {
	return sanitizeIdentifier(name)
}

// sanitizeIdentifier keeps letters and digits, doubles '_' and encodes
// anything else as _xHEX_. A leading digit gets a single '_' in front. Every
// escape starts with '_', so distinct source names stay distinct.
func sanitizeIdentifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case r == '_':
			b.WriteString("__")
		default:
			fmt.Fprintf(&b, "_x%x_", r)
		}
	}
	return b.String()
}

// singleQuote renders s as one single-quoted shell word
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// escapeDoubleQuoted makes s safe inside a double-quoted shell word
func escapeDoubleQuoted(s string) string {
	return doubleQuoteEscaper.Replace(s)
}

// isSafeWord reports whether s can appear unquoted as one shell word
func isSafeWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("_-./:=@%+,", r):
		default:
			return false
		}
	}
	return true
}

// positional returns the shell reference to positional parameter n (1-based)
func positional(n int) string {
	if n > 9 {
		return fmt.Sprintf("${%d}", n)
	}
	return fmt.Sprintf("$%d", n)
}
