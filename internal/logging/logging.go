// Package logging builds the structured logger shared by the repository
// layer and the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// EnvLevel overrides the configured log level when set.
const EnvLevel = "LVC_LOG_LEVEL"

// New returns a logger writing to w at the named level.
// Unknown level names fall back to warn.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Prefix:          "lvc",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a level name to a log.Level, defaulting to warn.
func ParseLevel(s string) log.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// ResolveLevel picks the first non-empty of the flag value, the environment
// and the repository setting.
func ResolveLevel(flag, setting string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvLevel); env != "" {
		return env
	}
	return setting
}

// Op creates a logging context for an operation.
// Returns a function that should be called when the operation completes.
//
// Usage:
//
//	done := logging.Op(logger, "commit", "branch", branch)
//	defer func() { done(err) }()
func Op(logger *log.Logger, op string, keyvals ...any) func(error) {
	if logger == nil {
		return func(error) {}
	}

	start := time.Now()
	return func(err error) {
		args := make([]any, 0, len(keyvals)+6)
		args = append(args, "op", op)
		args = append(args, "duration", time.Since(start).String())
		args = append(args, keyvals...)

		if err != nil {
			args = append(args, "error", err.Error())
			logger.Info("operation failed", args...)
			return
		}
		logger.Debug("operation complete", args...)
	}
}
