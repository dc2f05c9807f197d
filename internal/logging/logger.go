package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout flow UI/JSON output).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level, format Format) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level, format))
}

func newHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield Info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
