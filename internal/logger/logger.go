// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Outside production the output is
// human-readable; in production it is one JSON object per line.
func Setup(level string, production bool) zerolog.Logger {
	return setup(os.Stderr, level, production)
}

func setup(out io.Writer, level string, production bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	if !production {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "photorelay").
		Logger()

	if err != nil {
		l.Warn().Str("level", level).Msg("invalid LOG_LEVEL, defaulting to info")
	}

	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}
