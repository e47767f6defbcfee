package database

import (
	"strings"

	"okra.dev/utils/log"
)

// logger adapts the badger logger interface to our leveled logger. Badger is
// chatty at info level, so its info and debug output maps to trace.
type logger struct{}

func (l *logger) Errorf(format string, args ...interface{}) {
	log.E.F("badger: "+strings.TrimSpace(format), args...)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	log.W.F("badger: "+strings.TrimSpace(format), args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	log.T.F("badger: "+strings.TrimSpace(format), args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	log.T.F("badger: "+strings.TrimSpace(format), args...)
}
