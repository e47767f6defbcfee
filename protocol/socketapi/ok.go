package socketapi

import (
	"okra.dev/encoders/envelopes/okenvelope"
	"okra.dev/utils/normalize"
)

// OK writes an OK rejection for the event with the given id, with a
// machine-readable prefixed reason.
type OK func(a *A, id []byte, format string, params ...any) (err error)

// OKs collects the rejection writers, one per reason prefix.
type OKs struct {
	AuthRequired OK
	Duplicate    OK
	Blocked      OK
	RateLimited  OK
	Invalid      OK
	Error        OK
	Restricted   OK
}

func okWith(r normalize.R) OK {
	return func(a *A, id []byte, format string, params ...any) (err error) {
		return a.send(
			okenvelope.NewFrom(id, false, r.F(format, params...)).Marshal(nil),
		)
	}
}

// Ok provides the rejection writers used by the message handlers.
var Ok = OKs{
	AuthRequired: okWith(normalize.AuthRequired),
	Duplicate:    okWith(normalize.Duplicate),
	Blocked:      okWith(normalize.Blocked),
	RateLimited:  okWith(normalize.RateLimited),
	Invalid:      okWith(normalize.Invalid),
	Error:        okWith(normalize.Error),
	Restricted:   okWith(normalize.Restricted),
}

// OkAccepted writes the success acknowledgement for an event.
func (a *A) OkAccepted(id []byte) (err error) {
	return a.send(okenvelope.NewFrom(id, true, nil).Marshal(nil))
}

// OkRaw writes an OK rejection with a reason that carries no prefix.
func (a *A) OkRaw(id []byte, reason string) (err error) {
	return a.send(okenvelope.NewFrom(id, false, []byte(reason)).Marshal(nil))
}
