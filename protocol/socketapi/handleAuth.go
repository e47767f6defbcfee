package socketapi

import (
	"encoding/json"

	"okra.dev/encoders/envelopes/authenvelope"
	"okra.dev/protocol/auth"
	"okra.dev/utils/chk"
	"okra.dev/utils/log"
)

// HandleAuth validates a client's answer to the auth challenge. On success
// the session is marked authenticated and any event parked behind the auth
// gate is processed.
func (a *A) HandleAuth(rest []json.RawMessage) (notice []byte) {
	if !a.I.AuthRequired() {
		return
	}
	var err error
	env := authenvelope.NewResponse()
	if err = env.Unmarshal(rest); err != nil {
		return []byte(InvalidMessage)
	}
	var valid bool
	valid, err = auth.Validate(
		env.E, a.Listener.Challenge(),
		a.I.ServiceURL(a.Listener.Req()),
	)
	if err != nil || !valid || !a.I.Authorized(env.E.Pubkey) {
		if err != nil {
			log.D.F("auth failed for %s: %v", a.RealRemote(), err)
		}
		chk.E(Ok.Invalid(a, env.E.Id, "auth event validation failed"))
		return
	}
	if err = a.OkAccepted(env.E.Id); chk.E(err) {
		return
	}
	log.D.F("%s authed to pubkey %0x", a.Listener.RealRemote(), env.E.Pubkey)
	a.Listener.SetAuthedPubkey(env.E.Pubkey)
	a.Listener.SetChallenge(nil)
	if pending := a.Listener.GetPendingEvent(); pending != nil {
		a.processEvent(a.Ctx, pending)
	}
	return
}
