// Package logging builds the zerolog logger shared by every component.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel applies when the configured level is empty or unrecognized.
const DefaultLevel = zerolog.InfoLevel

// New returns a logger writing to w at the given level. A nil w writes to
// stderr. When pretty is set, output goes through a zerolog.ConsoleWriter.
func New(level string, pretty bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}

	lvl, known := ParseLevel(level)
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if !known {
		logger.Warn().Str("level", level).Msg("unrecognized log level, using info")
	}
	return logger
}

// ParseLevel maps a level name to a zerolog.Level. The second result is
// false when name is not a zerolog level; DefaultLevel is returned then.
func ParseLevel(name string) (zerolog.Level, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return DefaultLevel, true
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel, false
	}
	return lvl, true
}
