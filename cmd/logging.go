package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gaurav-prasanna/dailyword/config"
)

// newLogger builds the process logger. Console format is meant for
// terminals; json is meant for the server. A configured file is written
// in JSON through a rotating sink in addition to stderr.
func newLogger(c config.LogConfig, stderr io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if c.Level != "" {
		l, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("parsing log level: %w", err)
		}
		level = l
	}

	var out io.Writer
	switch c.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	case "json":
		out = stderr
	default:
		return zerolog.Logger{}, fmt.Errorf("unknown log format %q (want console or json)", c.Format)
	}

	if c.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
		})
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
