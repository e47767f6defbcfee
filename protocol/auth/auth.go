// Package auth implements the challenge-response authentication flow: the
// relay issues a random challenge and the client answers with a signed kind
// 22242 event naming the challenge and the relay URL.
package auth

import (
	"net/url"
	"strings"
	"time"

	"lukechampine.com/frand"

	"okra.dev/encoders/event"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tag"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
	"okra.dev/utils"
	"okra.dev/utils/chk"
	"okra.dev/utils/errorf"
)

// ChallengeLen is the number of random bytes in a challenge before hex
// encoding.
const ChallengeLen = 16

// GenerateChallenge creates a fresh random challenge string.
func GenerateChallenge() (b []byte) {
	return []byte(hex.Enc(frand.Bytes(ChallengeLen)))
}

// CreateUnsigned builds the event a client signs to answer a challenge.
func CreateUnsigned(pubkey, challenge []byte, relayURL string) (ev *event.E) {
	return &event.E{
		Pubkey:    pubkey,
		CreatedAt: timestamp.Now(),
		Kind:      kind.ClientAuthentication,
		Content:   []byte{},
		Tags: tags.New(
			tag.New("relay", relayURL),
			tag.New("challenge", string(challenge)),
		),
	}
}

func parseURL(input string) (*url.URL, error) {
	return url.Parse(strings.ToLower(strings.TrimSuffix(input, "/")))
}

var (
	// ChallengeTag names the tag carrying the echoed challenge.
	ChallengeTag = []byte("challenge")
	// RelayTag names the tag carrying the relay URL, which binds the
	// response to this relay.
	RelayTag = []byte("relay")
)

// Validate checks whether ev is a valid authentication response for the
// given challenge and relay URL: right kind, matching challenge and relay
// tags, created within ten minutes of now, correct id hash and signature.
func Validate(ev *event.E, challenge []byte, relayURL string) (
	ok bool, err error,
) {
	if ev.Kind.K != kind.ClientAuthentication.K {
		err = errorf.E("incorrect kind for auth: %d", ev.Kind.K)
		return
	}
	if ev.Tags.GetFirst(tag.New(ChallengeTag, challenge)) == nil {
		err = errorf.E("challenge tag missing from auth response")
		return
	}
	var expected, found *url.URL
	if expected, err = parseURL(relayURL); chk.D(err) {
		return
	}
	rt := ev.Tags.GetFirst(tag.New(RelayTag, nil))
	if rt.Len() < 2 || len(rt.Value()) == 0 {
		err = errorf.E("relay tag missing from auth response")
		return
	}
	if found, err = parseURL(string(rt.Value())); chk.D(err) {
		err = errorf.E("error parsing relay url: %s", err)
		return
	}
	if expected.Scheme != found.Scheme {
		err = errorf.E(
			"scheme incorrect: expected '%s' got '%s'",
			expected.Scheme, found.Scheme,
		)
		return
	}
	if expected.Host != found.Host {
		err = errorf.E(
			"host incorrect: expected '%s' got '%s'",
			expected.Host, found.Host,
		)
		return
	}
	if expected.Path != found.Path {
		err = errorf.E(
			"path incorrect: expected '%s' got '%s'",
			expected.Path, found.Path,
		)
		return
	}
	now := time.Now()
	if ev.CreatedAt.Time().After(now.Add(10*time.Minute)) ||
		ev.CreatedAt.Time().Before(now.Add(-10*time.Minute)) {
		err = errorf.E(
			"auth event more than 10 minutes before or after current time",
		)
		return
	}
	if !utils.FastEqual(ev.Id, ev.GetIDBytes()) {
		err = errorf.E("auth event id does not match canonical hash")
		return
	}
	// signature check last, it is the expensive one
	return ev.Verify()
}
