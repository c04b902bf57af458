// Package logging provides the leveled logger used across the pipeline,
// backed by charmbracelet/log with an optional plain-text file sink.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/config"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger fans log records out to the terminal and, when configured, to an
// append-mode log file. The file sink always receives uncolored text so logs
// stay greppable. All methods are safe for concurrent use.
type Logger struct {
	term *log.Logger
	file *log.Logger
	f    *os.File
}

// NewLogger builds a Logger from cfg. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	})
	term.SetLevel(log.DebugLevel)

	switch cfg.ColorMode {
	case config.ColorAlways:
		term.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		term.SetColorProfile(termenv.Ascii)
	}

	l := &Logger{term: term}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		fileLog := log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      timeFormat,
		})
		fileLog.SetLevel(log.DebugLevel)
		fileLog.SetColorProfile(termenv.Ascii)
		l.file = fileLog
		l.f = f
	}

	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.f != nil {
		err := l.f.Close()
		l.f = nil
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.term.Infof(format, args...)
	if l.file != nil {
		l.file.Infof(format, args...)
	}
}

// Success logs a completion message at INFO level.
func (l *Logger) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.term.Info("✓ " + msg)
	if l.file != nil {
		l.file.Info("✓ " + msg)
	}
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.term.Warnf(format, args...)
	if l.file != nil {
		l.file.Warnf(format, args...)
	}
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.term.Errorf(format, args...)
	if l.file != nil {
		l.file.Errorf(format, args...)
	}
}

// Debug logs at DEBUG level only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.term.Debugf(format, args...)
	if l.file != nil {
		l.file.Debugf(format, args...)
	}
}
