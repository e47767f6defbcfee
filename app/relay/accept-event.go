package relay

import (
	"okra.dev/encoders/event"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// AcceptEvent applies the publish policy: with a non-empty allow list only
// listed pubkeys may publish. The event is already signature-verified when
// this runs.
func (s *Server) AcceptEvent(
	c context.T, ev *event.E, remote string, authedPubkey []byte,
) (accept bool, notice string) {
	if ev == nil {
		return false, "invalid: empty event"
	}
	if !s.Policy().Authorizes(ev.Pubkey) {
		log.D.F(
			"rejecting event %0x from unlisted pubkey %0x (%s)",
			ev.Id, ev.Pubkey, remote,
		)
		return false, "blocked: not authorized"
	}
	return true, ""
}

// Authorized reports whether a pubkey passes the allow list.
func (s *Server) Authorized(pubkey []byte) bool {
	return s.Policy().Authorizes(pubkey)
}
