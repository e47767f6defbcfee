// Package publish fans accepted events out to the protocol publishers
// through a queue, so storing an event never blocks on slow subscribers.
package publish

import (
	"okra.dev/encoders/event"
	"okra.dev/interfaces/publisher"
	"okra.dev/protocol/ws"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// QueueSize bounds the number of events waiting for broadcast.
const QueueSize = 256

type item struct {
	ev     *event.E
	origin *ws.Listener
}

// S is the control structure for the subscription management scheme. It owns
// the broadcast queue and forwards each queued event to every registered
// publisher in order.
type S struct {
	Publishers []publisher.I
	queue      chan item
}

// New creates a publish.S over the given publishers.
func New(p ...publisher.I) (s *S) {
	return &S{Publishers: p, queue: make(chan item, QueueSize)}
}

var _ publisher.I = &S{}

// Type identifies this publisher for logging.
func (s *S) Type() string { return "publish" }

// Deliver enqueues an event for broadcast. When the queue is full the event
// is dropped from live delivery; it is already stored and reachable by REQ.
func (s *S) Deliver(ev *event.E, origin *ws.Listener) {
	select {
	case s.queue <- item{ev: ev, origin: origin}:
	default:
		log.W.F("broadcast queue full, dropping live delivery of %0x", ev.Id)
	}
}

// Run drains the queue until the context ends. Each event reaches the
// publishers in the order it was queued.
func (s *S) Run(c context.T) {
	for {
		select {
		case <-c.Done():
			return
		case it := <-s.queue:
			for _, p := range s.Publishers {
				p.Deliver(it.ev, it.origin)
			}
		}
	}
}
