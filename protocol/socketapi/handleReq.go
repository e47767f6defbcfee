package socketapi

import (
	"encoding/json"

	"okra.dev/encoders/envelopes/authenvelope"
	"okra.dev/encoders/envelopes/eoseenvelope"
	"okra.dev/encoders/envelopes/eventenvelope"
	"okra.dev/encoders/envelopes/reqenvelope"
	"okra.dev/encoders/event"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// HandleReq registers a subscription and replays matching stored events. The
// subscription goes live before the stored query runs, so an event arriving
// during the replay is never missed; it may at worst be delivered twice.
func (a *A) HandleReq(c context.T, rest []json.RawMessage) (notice []byte) {
	var err error
	env := reqenvelope.New()
	if err = env.Unmarshal(rest); err != nil {
		return []byte(InvalidMessage)
	}
	log.T.F("REQ %s from %s", env.Subscription, a.RealRemote())
	if a.I.AuthRequired() && !a.Listener.IsAuthed() {
		log.T.F("requesting auth from client at %s", a.Listener.RealRemote())
		a.Listener.RequestAuth()
		challenge := authenvelope.NewChallenge(a.Listener.Challenge())
		chk.E(a.send(challenge.Marshal(nil)))
		return
	}
	allowed, reason := a.I.AcceptReq(
		c, a.Listener.Req(), env.Filters, a.Listener.AuthedPubkey(),
	)
	if !allowed {
		return []byte(reason)
	}
	a.Subs.Subscribe(a.Listener, string(env.Subscription), env.Filters)
	var evs event.S
	if evs, err = a.I.Storage().QueryForFilters(c, env.Filters); chk.E(err) {
		log.E.F("eventstore: %v", err)
	}
	for _, ev := range evs {
		res := eventenvelope.NewResult(env.Subscription, ev)
		if err = a.send(res.Marshal(nil)); chk.E(err) {
			return
		}
	}
	if err = a.send(eoseenvelope.NewFrom(env.Subscription).Marshal(nil)); chk.E(err) {
		return
	}
	return
}
