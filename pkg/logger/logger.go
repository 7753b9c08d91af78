// Package logger configures structured logging for the server.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
}

// New builds a JSON slog logger at the given level. With a directory the log
// is written through lumberjack rotation; otherwise it goes to stdout.
func New(level, dir string) *Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level, using info\n", level)
	}

	var w io.Writer = os.Stdout
	file := ""
	if dir != "" {
		file = filepath.Join(dir, "airport.slog")
		w = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    32, // MB
			MaxBackups: 2,
		}
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{Logger: slog.New(h), LogFile: file}
}

// Discard returns a logger that drops everything; used in tests.
func Discard() *Logger {
	h := slog.NewJSONHandler(io.Discard, nil)
	return &Logger{Logger: slog.New(h)}
}
