package relay

import (
	"okra.dev/encoders/event"
	"okra.dev/encoders/kind"
	"okra.dev/protocol/ws"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// AddEvent stores an accepted event per its kind class and hands it to the
// broadcast queue. Ephemeral events skip storage entirely; a duplicate or an
// event superseded by a stored later one is acknowledged without a write and
// without broadcast.
func (s *Server) AddEvent(c context.T, ev *event.E, origin *ws.Listener) (
	accepted bool, err error,
) {
	var broadcast bool
	switch ev.Kind.Classify() {
	case kind.Authentication:
		// auth events are session artifacts, never stored or broadcast
		return
	case kind.Ephemeral:
		broadcast = true
	case kind.Replaceable:
		var stored bool
		if stored, err = s.store.SaveReplaceable(c, ev); chk.E(err) {
			return
		}
		broadcast = stored
	case kind.ParameterizedReplaceable:
		var stored bool
		if stored, err = s.store.SaveParameterized(c, ev); chk.E(err) {
			return
		}
		broadcast = stored
	default:
		var exists bool
		if exists, err = s.store.SaveEvent(c, ev); chk.E(err) {
			return
		}
		broadcast = !exists
	}
	if broadcast {
		s.listeners.Deliver(ev, origin)
		log.T.F("event %0x queued for broadcast", ev.Id)
	}
	accepted = true
	return
}
