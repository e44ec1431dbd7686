// Package logger provides zap logger construction and shared field helpers.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the process logger. Verbose enables debug-level development
// output; otherwise a production JSON logger is returned.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NopIfNil returns a no-op logger when the input is nil, so components can
// log unconditionally.
func NopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Truncate shortens free text to the given rune limit for log fields,
// appending an ellipsis when truncated.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
