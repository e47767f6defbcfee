// Package log is a leveled logger with colored level tags and short caller
// locations. The six levels, fatal through trace, are exposed as package
// variables so call sites read as log.I.F(...), log.T.C(...), and so on.
package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

// Level codes, in order of increasing verbosity.
const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

var LevelNames = []string{"off", "fatal", "error", "warn", "info", "debug", "trace"}

var (
	currentLevel atomic.Int32
	writer       io.Writer = os.Stderr

	levelTags = []string{
		"",
		color.New(color.BgRed, color.FgHiWhite).Sprint(" FTL "),
		color.New(color.FgHiRed).Sprint("ERR"),
		color.New(color.FgHiYellow).Sprint("WRN"),
		color.New(color.FgHiGreen).Sprint("INF"),
		color.New(color.FgHiBlue).Sprint("DBG"),
		color.New(color.FgHiMagenta).Sprint("TRC"),
	}
)

func init() { currentLevel.Store(Info) }

// SetLogLevel sets the active level by name. Unknown names leave the level
// unchanged.
func SetLogLevel(name string) {
	for i, n := range LevelNames {
		if strings.ToLower(name) == n {
			currentLevel.Store(int32(i))
			return
		}
	}
}

// SetWriter redirects log output, mainly for tests.
func SetWriter(w io.Writer) { writer = w }

// L is one log level, carrying the methods that emit at that level.
type L struct{ level int32 }

var (
	F = &L{Fatal}
	E = &L{Error}
	W = &L{Warn}
	I = &L{Info}
	D = &L{Debug}
	T = &L{Trace}
)

func (l *L) enabled() bool { return currentLevel.Load() >= l.level }

func (l *L) emit(s string) {
	loc := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		parts := strings.Split(file, "/")
		if len(parts) > 2 {
			parts = parts[len(parts)-2:]
		}
		loc = fmt.Sprintf("%s:%d", strings.Join(parts, "/"), line)
	}
	fmt.Fprintf(
		writer, "%s %s %s %s\n",
		time.Now().Format("15:04:05.000"), levelTags[l.level], s, loc,
	)
	if l.level == Fatal {
		os.Exit(1)
	}
}

// F emits a printf-formatted message at the level.
func (l *L) F(format string, a ...any) {
	if !l.enabled() {
		return
	}
	l.emit(fmt.Sprintf(format, a...))
}

// Ln emits the arguments in Println style at the level.
func (l *L) Ln(a ...any) {
	if !l.enabled() {
		return
	}
	l.emit(strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
}

// C runs the closure to produce the message only when the level is active,
// so expensive formatting is free when it would be discarded.
func (l *L) C(fn func() string) {
	if !l.enabled() {
		return
	}
	l.emit(fn())
}

// S spew-dumps the arguments at the level.
func (l *L) S(a ...any) {
	if !l.enabled() {
		return
	}
	l.emit(strings.TrimSuffix(spew.Sdump(a...), "\n"))
}

// Chk logs an error at the level and reports whether it was non-nil. It backs
// the chk package helpers.
func (l *L) Chk(err error) (nonNil bool) {
	if err == nil {
		return
	}
	if l.enabled() {
		l.emit(err.Error())
	}
	return true
}
