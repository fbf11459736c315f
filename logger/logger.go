// Package logger provides a small leveled logger that prefixes every line with a
// colored component tag, e.g. "[EPISODE] [INFO] ...".
package logger

import (
	"errors"
	"io"
	"log"

	"github.com/beka-birhanu/rotating-maze/config"
)

// Logger writes leveled, prefixed log lines to a single writer.
// It is safe for concurrent use.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a Logger tagging lines with prefix in the given ANSI color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("nil writer")
	}
	if prefix == "" {
		return nil, errors.New("empty prefix")
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.write("INFO", msg) }

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) { l.write("WARNING", msg) }

// Error logs a failure.
func (l *Logger) Error(msg string) { l.write("ERROR", msg) }

func (l *Logger) write(level, msg string) {
	l.out.Printf("%s[%s]%s [%s] %s", l.color, l.prefix, config.ColorReset, level, msg)
}
