package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir          = "logs"
	fileBufferSize  = 32 * 1024
	consoleBacklog  = 1024
	defaultLogLevel = logrus.InfoLevel
)

type Options struct {
	// Level is a logrus level name; LOG_LEVEL is used when empty.
	Level string
	// File is the log file name inside Dir. Empty disables file output.
	File string
	// Dir defaults to "logs".
	Dir string
	// Console mirrors every entry to stdout.
	Console bool
}

// Logger owns the writers behind a logrus logger so they can be flushed on
// shutdown.
type Logger struct {
	*logrus.Logger
	file    *AsyncFileWriter
	console *AsyncConsoleHook
}

func NewLogger(opts Options) (*Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	l.SetLevel(parseLevel(opts.Level))

	result := &Logger{Logger: l}
	if opts.File != "" {
		dir := opts.Dir
		if dir == "" {
			dir = logDir
		}
		path := filepath.Join(dir, filepath.Base(filepath.Clean(opts.File)))
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer, err := NewAsyncFileWriter(path, fileBufferSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		result.file = writer
		l.SetOutput(writer)
	}

	if opts.Console {
		if result.file == nil {
			l.SetOutput(os.Stdout)
		} else {
			result.console = NewAsyncConsoleHook(consoleBacklog)
			l.AddHook(result.console)
		}
	}
	return result, nil
}

// Close flushes pending entries.
func (l *Logger) Close() {
	if l.console != nil {
		l.console.Close()
	}
	if l.file != nil {
		l.file.Close()
	}
}

func parseLevel(level string) logrus.Level {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return defaultLogLevel
	}
	return parsed
}
