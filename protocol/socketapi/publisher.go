package socketapi

import (
	"sync"

	"okra.dev/app/relay/publish"
	"okra.dev/encoders/envelopes/eventenvelope"
	"okra.dev/encoders/event"
	"okra.dev/encoders/filters"
	"okra.dev/interfaces/publisher"
	"okra.dev/protocol/ws"
	"okra.dev/utils/log"
)

// Type identifies this publisher in logs.
const Type = "socketapi"

// Map associates each connection with its subscriptions and their filters.
type Map map[*ws.Listener]map[string]*filters.T

// S is the registry of live subscriptions. Delivery consults the author
// index first, so the cost of a broadcast scales with the subscribers of the
// event's author rather than with every open subscription.
type S struct {
	Mx sync.Mutex
	Map
	Authors *publish.Authors
}

var _ publisher.I = &S{}

// New creates an empty subscription registry.
func New() (p *S) {
	return &S{Map: make(Map), Authors: publish.NewAuthors()}
}

// Type identifies this publisher in logs.
func (p *S) Type() (typeName string) { return Type }

// Subscribe registers a subscription. A subscription with the same id on the
// same connection is replaced.
func (p *S) Subscribe(l *ws.Listener, id string, ff *filters.T) {
	p.Mx.Lock()
	subs, ok := p.Map[l]
	if !ok {
		subs = make(map[string]*filters.T)
		p.Map[l] = subs
	}
	subs[id] = ff
	p.Mx.Unlock()
	p.Authors.Register(l, id, ff.Authors())
	log.T.F(
		"subscription %s for %s: %s", id, l.RealRemote(), ff.Marshal(nil),
	)
}

// Unsubscribe removes one subscription of a connection.
func (p *S) Unsubscribe(l *ws.Listener, id string) {
	p.Mx.Lock()
	if subs, ok := p.Map[l]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(p.Map, l)
		}
	}
	p.Mx.Unlock()
	p.Authors.Unregister(l, id)
}

// RemoveListener removes every subscription of a connection, used when it
// disconnects.
func (p *S) RemoveListener(l *ws.Listener) {
	p.Mx.Lock()
	clear(p.Map[l])
	delete(p.Map, l)
	p.Mx.Unlock()
	p.Authors.UnregisterAll(l)
	log.T.F("removed listener %s", l.RealRemote())
}

// Deliver queues the event for every subscription of the event's author
// whose filters match it, skipping the connection it arrived on. Each frame
// goes into the target session's mailbox; a full mailbox drops the frame for
// that connection only, so one stalled client never holds up the fan-out.
func (p *S) Deliver(ev *event.E, origin *ws.Listener) {
	for _, k := range p.Authors.Candidates(ev.Pubkey) {
		if k.L == origin {
			continue
		}
		p.Mx.Lock()
		ff := p.Map[k.L][k.Id]
		p.Mx.Unlock()
		if ff == nil || !ff.Match(ev) {
			continue
		}
		res := eventenvelope.NewResult([]byte(k.Id), ev)
		if !k.L.QueueLive(res.Marshal(nil)) {
			log.W.F(
				"mailbox full, dropping event %0x for %s sub %s",
				ev.Id, k.L.RealRemote(), k.Id,
			)
			continue
		}
		log.T.F("queued event %0x for subscription %s", ev.Id, k.Id)
	}
}
