package socketapi

import (
	"fmt"

	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/envelopes/authenvelope"
	"okra.dev/encoders/envelopes/closeenvelope"
	"okra.dev/encoders/envelopes/eventenvelope"
	"okra.dev/encoders/envelopes/noticeenvelope"
	"okra.dev/encoders/envelopes/reqenvelope"
	"okra.dev/utils/chk"
	"okra.dev/utils/log"
)

// InvalidMessage is the notice sent for frames that do not parse as any
// known envelope.
const InvalidMessage = "Invalid message"

// HandleMessage identifies the envelope type of an inbound frame and routes
// it to the matching handler. Handlers return a notice string when the
// client should be told something outside the normal reply of the message
// type.
func (a *A) HandleMessage(msg []byte) {
	remote := a.Listener.RealRemote()
	log.T.C(
		func() string {
			return fmt.Sprintf("%s received message:\n%s", remote, msg)
		},
	)
	var notice []byte
	label, rest, err := envelopes.Identify(msg)
	if err != nil {
		notice = []byte(InvalidMessage)
	} else {
		switch label {
		case eventenvelope.L:
			notice = a.HandleEvent(a.Ctx, rest)
		case reqenvelope.L:
			notice = a.HandleReq(a.Ctx, rest)
		case closeenvelope.L:
			notice = a.HandleClose(rest)
		case authenvelope.L:
			notice = a.HandleAuth(rest)
		default:
			notice = []byte(InvalidMessage)
		}
	}
	if len(notice) > 0 {
		log.D.C(
			func() string {
				return fmt.Sprintf("notice->%s %s", remote, notice)
			},
		)
		if err = a.send(noticeenvelope.NewFrom(notice).Marshal(nil)); chk.E(err) {
			return
		}
	}
}
