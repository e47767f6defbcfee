// Package errorf provides printf-style error constructors that also log the
// error at the corresponding level, so the site of first construction is
// visible in the logs.
package errorf

import (
	"fmt"

	"okra.dev/utils/log"
)

// E creates an error and logs it at error level.
func E(format string, a ...any) (err error) {
	err = fmt.Errorf(format, a...)
	log.E.Ln(err)
	return
}

// W creates an error and logs it at warn level.
func W(format string, a ...any) (err error) {
	err = fmt.Errorf(format, a...)
	log.W.Ln(err)
	return
}

// D creates an error and logs it at debug level.
func D(format string, a ...any) (err error) {
	err = fmt.Errorf(format, a...)
	log.D.Ln(err)
	return
}
