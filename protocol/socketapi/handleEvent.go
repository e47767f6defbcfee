package socketapi

import (
	"encoding/json"

	"okra.dev/encoders/envelopes/authenvelope"
	"okra.dev/encoders/envelopes/eventenvelope"
	"okra.dev/encoders/event"
	"okra.dev/encoders/hex"
	"okra.dev/utils"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// HandleEvent processes an EVENT submission: parse, authentication gate,
// validation, policy, storage and broadcast, answering with a single OK.
func (a *A) HandleEvent(c context.T, rest []json.RawMessage) (notice []byte) {
	var err error
	log.T.F(
		"handleEvent %s authed: %0x", a.RealRemote(),
		a.Listener.AuthedPubkey(),
	)
	env := eventenvelope.NewSubmission()
	if err = env.Unmarshal(rest); err != nil {
		// a malformed event still gets an OK when its id is recoverable,
		// so the client can correlate the rejection
		if id := recoverEventId(rest); id != nil {
			chk.E(Ok.Invalid(a, id, "%s", err.Error()))
			return
		}
		return []byte(InvalidMessage)
	}
	if !a.verifyEvent(env.E) {
		return
	}
	if a.I.AuthRequired() && !a.Listener.IsAuthed() {
		log.T.F("requesting auth from client at %s", a.Listener.RealRemote())
		a.Listener.RequestAuth()
		a.Listener.SetPendingEvent(env.E)
		challenge := authenvelope.NewChallenge(a.Listener.Challenge())
		chk.E(a.send(challenge.Marshal(nil)))
		return
	}
	a.processEvent(c, env.E)
	return
}

// recoverEventId pulls a well-formed id out of an event object that failed
// full decoding, so the rejection can name it.
func recoverEventId(rest []json.RawMessage) (id []byte) {
	if len(rest) != 1 {
		return
	}
	var partial struct {
		Id *string `json:"id"`
	}
	if err := json.Unmarshal(rest[0], &partial); err != nil || partial.Id == nil {
		return
	}
	b, err := hex.Dec(*partial.Id)
	if err != nil || len(b) != 32 {
		return
	}
	return b
}

// verifyEvent checks the id and signature, answering with an OK on failure.
// It runs before the auth gate so a bad event is refused even unauthed.
func (a *A) verifyEvent(ev *event.E) (ok bool) {
	var err error
	calculated := ev.GetIDBytes()
	if !utils.FastEqual(calculated, ev.Id) {
		chk.E(
			Ok.Invalid(
				a, ev.Id,
				"event id is computed incorrectly, event has id %0x, "+
					"but when computed it is %0x", ev.Id, calculated,
			),
		)
		return
	}
	var valid bool
	if valid, err = ev.Verify(); chk.T(err) {
		chk.E(Ok.Error(a, ev.Id, "failed to verify signature: %s", err.Error()))
		return
	} else if !valid {
		chk.E(Ok.Invalid(a, ev.Id, "signature is invalid"))
		return
	}
	return true
}

// processEvent applies policy and storage for a verified event. It is also
// the continuation for an event parked behind the auth gate.
func (a *A) processEvent(c context.T, ev *event.E) {
	var err error
	if ev.Kind.IsAuth() {
		chk.E(a.OkRaw(ev.Id, "AUTH events are not stored"))
		return
	}
	accept, notice := a.I.AcceptEvent(
		c, ev, a.Listener.RealRemote(), a.Listener.AuthedPubkey(),
	)
	if !accept {
		chk.E(a.OkRaw(ev.Id, notice))
		return
	}
	var accepted bool
	if accepted, err = a.I.AddEvent(c, ev, a.Listener); chk.E(err) {
		chk.E(a.OkRaw(ev.Id, "Something went wrong"))
		return
	}
	log.D.F("event %0x added %v", ev.Id, accepted)
	chk.E(a.OkAccepted(ev.Id))
}
