package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger builds the application logger. With a log file configured
// the sink is a size-rotated file; --debug mirrors everything to stderr.
// Without either, logs are discarded so they never bleed into the
// teletext screen.
func SetupLogger(logFilePath string, debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if logFilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    5, // megabytes
			MaxBackups: 2,
		})
	}
	if debug {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	if debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	return logger
}
