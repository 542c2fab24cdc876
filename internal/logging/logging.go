// Package logging wraps the standard logger behind an injectable sink.
//
// The core never assumes os.Stdout is writable or even stable: a GUI
// front-end collaborator is free to remap process-wide stdout/stderr per
// panel, so every log line here goes through a *log.Logger we were handed,
// never through the bare log package globals.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger is the thin interface the rest of chatd logs through.
type Logger struct {
	l *log.Logger
}

// New wraps w (e.g. os.Stdout, a file, or a GUI-owned pipe) with a prefix,
// following the "[area] message" convention used throughout chatd.
func New(w io.Writer, prefix string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{l: log.New(w, prefix, log.LstdFlags)}
}

// Default returns a stderr-backed logger for the given area, e.g. "[journal]".
func Default(area string) *Logger {
	return New(os.Stderr, "["+area+"] ")
}

func (l *Logger) Printf(format string, args ...interface{}) {
	l.l.Printf(format, args...)
}

func (l *Logger) Println(args ...interface{}) {
	l.l.Println(args...)
}

// Fatalf logs then exits. Reserved for unrecoverable failures (startup
// errors, a failed journal append), never for per-connection or per-task
// errors (those are logged and swallowed).
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.l.Fatalf(format, args...)
}
