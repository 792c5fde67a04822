// Package cliutil holds the small pieces cmd/bricgen needs that don't
// belong in any of the pipeline packages: a colorized status logger in
// the vein of cmd/schemagen's verbose log.Printf lines, minus the
// emoji and with real color instead.
package cliutil

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger prints status lines to an io.Writer, colorized by level unless
// fatih/color's global NoColor is set (fatih/color sets it when stdout is
// not a terminal, whichever writer the Logger uses).
type Logger struct {
	out     io.Writer
	verbose bool

	info  *color.Color
	warn  *color.Color
	fail  *color.Color
	ok    *color.Color
}

// NewLogger returns a Logger writing to os.Stderr.
func NewLogger(verbose bool) *Logger {
	return &Logger{
		out:     os.Stderr,
		verbose: verbose,
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		ok:      color.New(color.FgGreen),
	}
}

// Infof prints a status line, but only when the logger is verbose.
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.info.Fprintf(l.out, format+"\n", args...)
}

// Warnf prints a warning line unconditionally.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.warn.Fprintf(l.out, "warning: "+format+"\n", args...)
}

// Errorf prints an error line unconditionally.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.fail.Fprintf(l.out, "error: "+format+"\n", args...)
}

// Donef prints a success line, but only when the logger is verbose.
func (l *Logger) Donef(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.ok.Fprintf(l.out, format+"\n", args...)
}

// Fatalf prints an error line and exits the process with status 1.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Errorf(format, args...)
	os.Exit(1)
}
