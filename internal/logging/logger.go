// Package logging builds the run logger: leveled logrus output on stdout,
// colored on a terminal, with an optional plain-text file sink.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"imgs2pdf/internal/config"
)

const timestampFormat = "2006-01-02 15:04:05"

// Logger is a logrus logger that owns its log file, if any
type Logger struct {
	*logrus.Logger
	file *os.File
}

// NewLogger configures level, color and the optional log file from cfg.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := colorEnabled(cfg.NoColor)

	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		ForceColors:     color,
		DisableColors:   !color,
	})
	l.SetLevel(logrus.InfoLevel)
	if cfg.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	out := &Logger{Logger: l}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out.file = f
		l.AddHook(&fileHook{
			file: f,
			formatter: &logrus.TextFormatter{
				FullTimestamp:   true,
				TimestampFormat: timestampFormat,
				DisableColors:   true,
			},
		})
	}
	return out, nil
}

// Close closes the log file if one was opened
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// fileHook writes every entry to the log file without ANSI colors
type fileHook struct {
	mu        sync.Mutex
	file      *os.File
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(e *logrus.Entry) error {
	line, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.file.Write(line)
	return err
}

func colorEnabled(disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a character device
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
