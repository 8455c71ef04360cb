// Package log wraps the standard logger for diagnostics. Output is discarded
// until SetOutput is called, so the dump on stdout stays clean by default.
package log

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"sync/atomic"
)

type Logger struct {
	l *log.Logger
	// While a terminal is in raw mode a bare LF does not return the cursor,
	// so every LF is written as CRLF.
	rawMode atomic.Bool
}

var (
	crlfPrefixer = regexp.MustCompile(`(?:([^\r])\n|^\n)`)
)

var std = New(io.Discard, "hexi: ", log.LstdFlags, false)

// Default returns the logger used by the package-level functions.
func Default() *Logger { return std }

func New(out io.Writer, prefix string, flag int, rawMode bool) *Logger {
	l := &Logger{l: log.New(out, prefix, flag)}
	l.rawMode.Store(rawMode)
	return l
}

func (l *Logger) fixString(str string) string {
	if !l.rawMode.Load() {
		return str
	}

	s := crlfPrefixer.ReplaceAllString(str, "$1\r\n")
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\r\n"
	}
	return s
}

func (l *Logger) RawMode() bool {
	return l.rawMode.Load()
}

func (l *Logger) SetRawMode(rawMode bool) {
	l.rawMode.Store(rawMode)
}

func (l *Logger) SetOutput(w io.Writer) {
	l.l.SetOutput(w)
}

func (l *Logger) Writer() io.Writer {
	return l.l.Writer()
}

// Printf logs in the manner of [fmt.Printf].
func (l *Logger) Printf(format string, v ...any) {
	if l.l.Writer() == io.Discard {
		return
	}
	l.l.Output(2, l.fixString(fmt.Sprintf(format, v...)))
}

// Println logs in the manner of [fmt.Println].
func (l *Logger) Println(v ...any) {
	if l.l.Writer() == io.Discard {
		return
	}
	l.l.Output(2, l.fixString(fmt.Sprintln(v...)))
}

// SetOutput sets the output destination of the default logger.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Writer() io.Writer {
	return std.Writer()
}

func Printf(format string, v ...any) {
	std.Printf(format, v...)
}

func Println(v ...any) {
	std.Println(v...)
}
