// Package logging sets up the process logger: human-readable console output
// plus a rotated file under the log directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup returns a logger writing to stdout and to a size-rotated bot.log.
// Rotated files are kept for 30 days, matching the retention the bot has
// always used.
func Setup(dir, level string) (zerolog.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), fmt.Errorf("create log directory %s: %w", dir, err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "bot.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 30,
		MaxAge:     30, // days
	}
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(console, rotator)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, nil
}
