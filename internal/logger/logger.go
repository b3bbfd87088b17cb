// Package logger sets up the slog logger used across stillmove. Records are
// formatted by charmbracelet/log and written to a rotated file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/osutil"
)

// Config holds logger configuration.
type Config struct {
	// Stderr receives a copy of every record in debug mode
	Stderr io.Writer
	Path   string
	Debug  bool
}

// Logger is a slog logger bound to a rotating log file.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New creates the log directory and returns a logger writing into Path.
// Only warnings and errors are kept unless Debug is set.
func New(cfg Config) (*Logger, error) {
	err := os.MkdirAll(filepath.Dir(cfg.Path), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = file

	level := log.WarnLevel

	if cfg.Debug {
		level = log.DebugLevel

		if cfg.Stderr != nil {
			w = io.MultiWriter(cfg.Stderr, file)
		}
	}

	return &Logger{
		Logger: slog.New(NewHandler(w, level, cfg.Debug)),
		file:   file,
	}, nil
}

// NewHandler returns a slog handler formatting records with charmbracelet/log.
func NewHandler(w io.Writer, level log.Level, caller bool) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    caller,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "stillmove",
	})
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	return l.file.Close()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, log.FatalLevel, false))
}
