// Package interrupt runs registered handlers on SIGINT/SIGTERM, giving the
// relay one place to hang graceful shutdown hooks.
package interrupt

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"okra.dev/utils/log"
)

var (
	mx       sync.Mutex
	handlers []func()
	started  bool
)

// AddHandler registers a function to run when an interrupt signal arrives.
// The listener goroutine starts on first registration.
func AddHandler(fn func()) {
	mx.Lock()
	defer mx.Unlock()
	handlers = append(handlers, fn)
	if started {
		return
	}
	started = true
	go listen()
}

func listen() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	log.I.F("received %v, shutting down", s)
	mx.Lock()
	hs := make([]func(), len(handlers))
	copy(hs, handlers)
	mx.Unlock()
	for _, fn := range hs {
		fn()
	}
}
