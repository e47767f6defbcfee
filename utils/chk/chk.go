// Package chk provides one-character error check helpers that log the error
// with its caller location and return true when it is non-nil, enabling the
// if chk.E(err) { return } form used throughout this repository.
package chk

import (
	"okra.dev/utils/log"
)

// E logs a non-nil error at error level and returns true if err != nil.
func E(err error) bool { return log.E.Chk(err) }

// W logs a non-nil error at warn level and returns true if err != nil.
func W(err error) bool { return log.W.Chk(err) }

// D logs a non-nil error at debug level and returns true if err != nil.
func D(err error) bool { return log.D.Chk(err) }

// T logs a non-nil error at trace level and returns true if err != nil.
func T(err error) bool { return log.T.Chk(err) }
