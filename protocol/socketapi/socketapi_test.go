package socketapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/stretchr/testify/require"

	"okra.dev/app/config"
	"okra.dev/app/relay"
	"okra.dev/crypto/p256k"
	"okra.dev/database"
	"okra.dev/encoders/envelopes"
	"okra.dev/encoders/event"
	"okra.dev/encoders/hex"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
	"okra.dev/protocol/auth"
	"okra.dev/utils/context"
)

func newRelay(t *testing.T, cfg *config.C) (wsURL string) {
	t.Helper()
	c, cancel := context.Cancel(context.Bg())
	db, err := database.New(c, cancel, t.TempDir(), "error")
	require.NoError(t, err)
	s, err := relay.NewServer(
		&relay.ServerParams{Ctx: c, Cancel: cancel, Sto: db, C: cfg},
	)
	require.NoError(t, err)
	ts := httptest.NewServer(http.HandlerFunc(s.ServeHTTP))
	t.Cleanup(
		func() {
			ts.Close()
			cancel()
		},
	)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newSigner(t *testing.T) *p256k.Signer {
	t.Helper()
	s := new(p256k.Signer)
	require.NoError(t, s.Generate())
	return s
}

func signedEvent(
	t *testing.T, signer *p256k.Signer, k uint16, createdAt int64,
	content string,
) (ev *event.E) {
	t.Helper()
	ev = &event.E{
		CreatedAt: timestamp.New(createdAt),
		Kind:      kind.New(k),
		Tags:      tags.New(),
		Content:   []byte(content),
	}
	require.NoError(t, ev.Sign(signer))
	return
}

func send(t *testing.T, conn *websocket.Conn, frame []byte) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev *event.E) {
	t.Helper()
	send(t, conn, envelopes.Marshal(nil, "EVENT", ev.Marshal))
}

func sendReq(t *testing.T, conn *websocket.Conn, sub string, pub []byte) {
	t.Helper()
	send(
		t, conn, []byte(
			fmt.Sprintf(`["REQ","%s",{"authors":["%s"]}]`, sub, hex.Enc(pub)),
		),
	)
}

func readFrame(t *testing.T, conn *websocket.Conn) (
	label string, rest []json.RawMessage,
) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	label, rest, err = envelopes.Identify(msg)
	require.NoError(t, err)
	return
}

func requireOK(
	t *testing.T, rest []json.RawMessage, id []byte, accepted bool,
) (reason string) {
	t.Helper()
	require.Len(t, rest, 3)
	var idHex string
	require.NoError(t, json.Unmarshal(rest[0], &idHex))
	if id != nil {
		require.Equal(t, hex.Enc(id), idHex)
	}
	var ok bool
	require.NoError(t, json.Unmarshal(rest[1], &ok))
	require.Equal(t, accepted, ok)
	require.NoError(t, json.Unmarshal(rest[2], &reason))
	return
}

func requireEventFrame(
	t *testing.T, rest []json.RawMessage, sub string, id []byte,
) {
	t.Helper()
	require.Len(t, rest, 2)
	var gotSub string
	require.NoError(t, json.Unmarshal(rest[0], &gotSub))
	require.Equal(t, sub, gotSub)
	got := &event.E{}
	require.NoError(t, got.Unmarshal(rest[1]))
	require.Equal(t, id, got.Id)
}

func TestPublishAndReplay(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)
	ev := signedEvent(t, signer, 1, 1000, "hello")

	pub := dial(t, url)
	sendEvent(t, pub, ev)
	label, rest := readFrame(t, pub)
	require.Equal(t, "OK", label)
	require.Equal(t, "", requireOK(t, rest, ev.Id, true))

	sub := dial(t, url)
	sendReq(t, sub, "x", signer.Pub())
	label, rest = readFrame(t, sub)
	require.Equal(t, "EVENT", label)
	requireEventFrame(t, rest, "x", ev.Id)
	label, rest = readFrame(t, sub)
	require.Equal(t, "EOSE", label)
	var gotSub string
	require.NoError(t, json.Unmarshal(rest[0], &gotSub))
	require.Equal(t, "x", gotSub)
}

func TestLiveDelivery(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)

	a := dial(t, url)
	sendReq(t, a, "live", signer.Pub())
	label, _ := readFrame(t, a)
	require.Equal(t, "EOSE", label)

	b := dial(t, url)
	ev := signedEvent(t, signer, 1, 2000, "fresh")
	sendEvent(t, b, ev)
	label, rest := readFrame(t, b)
	require.Equal(t, "OK", label)
	requireOK(t, rest, ev.Id, true)

	label, rest = readFrame(t, a)
	require.Equal(t, "EVENT", label)
	requireEventFrame(t, rest, "live", ev.Id)

	// the publisher gets only its OK, never the event back
	require.NoError(
		t, b.SetReadDeadline(time.Now().Add(300*time.Millisecond)),
	)
	_, _, err := b.ReadMessage()
	require.Error(t, err)
}

func TestReplaceableReplayKeepsLatest(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)
	conn := dial(t, url)
	older := signedEvent(t, signer, 0, 100, "old profile")
	newer := signedEvent(t, signer, 0, 200, "new profile")
	for _, ev := range []*event.E{older, newer} {
		sendEvent(t, conn, ev)
		_, rest := readFrame(t, conn)
		requireOK(t, rest, ev.Id, true)
	}
	sendReq(t, conn, "p", signer.Pub())
	label, rest := readFrame(t, conn)
	require.Equal(t, "EVENT", label)
	requireEventFrame(t, rest, "p", newer.Id)
	label, _ = readFrame(t, conn)
	require.Equal(t, "EOSE", label)
}

func TestEphemeralNotStored(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)
	conn := dial(t, url)
	ev := signedEvent(t, signer, 20000, 1000, "now or never")
	sendEvent(t, conn, ev)
	_, rest := readFrame(t, conn)
	requireOK(t, rest, ev.Id, true)
	sendReq(t, conn, "e", signer.Pub())
	label, _ := readFrame(t, conn)
	require.Equal(t, "EOSE", label)
}

func TestAuthFlow(t *testing.T) {
	url := newRelay(t, &config.C{AuthRequired: true})
	signer := newSigner(t)
	conn := dial(t, url)

	label, rest := readFrame(t, conn)
	require.Equal(t, "AUTH", label)
	var challenge string
	require.NoError(t, json.Unmarshal(rest[0], &challenge))
	require.Len(t, challenge, 32)

	// the event is parked behind the auth gate; the challenge is repeated
	ev := signedEvent(t, signer, 1, 1000, "gated")
	sendEvent(t, conn, ev)
	label, _ = readFrame(t, conn)
	require.Equal(t, "AUTH", label)

	authEv := auth.CreateUnsigned(
		signer.Pub(), []byte(challenge), url,
	)
	require.NoError(t, authEv.Sign(signer))
	send(t, conn, envelopes.Marshal(nil, "AUTH", authEv.Marshal))
	label, rest = readFrame(t, conn)
	require.Equal(t, "OK", label)
	requireOK(t, rest, authEv.Id, true)

	// the parked event is processed once the session is authed
	label, rest = readFrame(t, conn)
	require.Equal(t, "OK", label)
	requireOK(t, rest, ev.Id, true)
}

func TestAuthRejectsWrongChallenge(t *testing.T) {
	url := newRelay(t, &config.C{AuthRequired: true})
	signer := newSigner(t)
	conn := dial(t, url)
	label, _ := readFrame(t, conn)
	require.Equal(t, "AUTH", label)

	authEv := auth.CreateUnsigned(
		signer.Pub(), auth.GenerateChallenge(), url,
	)
	require.NoError(t, authEv.Sign(signer))
	send(t, conn, envelopes.Marshal(nil, "AUTH", authEv.Marshal))
	label, rest := readFrame(t, conn)
	require.Equal(t, "OK", label)
	reason := requireOK(t, rest, authEv.Id, false)
	require.Equal(t, "invalid: auth event validation failed", reason)
}

func TestReqRequiresAuthors(t *testing.T) {
	url := newRelay(t, &config.C{})
	conn := dial(t, url)
	send(t, conn, []byte(`["REQ","bare",{}]`))
	label, rest := readFrame(t, conn)
	require.Equal(t, "NOTICE", label)
	var msg string
	require.NoError(t, json.Unmarshal(rest[0], &msg))
	require.Equal(
		t,
		"rejected: this relay requires an 'authors' filter for all subscriptions",
		msg,
	)
}

func TestCloseNotice(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)
	conn := dial(t, url)
	sendReq(t, conn, "x", signer.Pub())
	label, _ := readFrame(t, conn)
	require.Equal(t, "EOSE", label)
	send(t, conn, []byte(`["CLOSE","x"]`))
	label, rest := readFrame(t, conn)
	require.Equal(t, "NOTICE", label)
	var msg string
	require.NoError(t, json.Unmarshal(rest[0], &msg))
	require.Equal(t, "Closed sub_id: `x`", msg)
}

func TestInvalidFrame(t *testing.T) {
	url := newRelay(t, &config.C{})
	conn := dial(t, url)
	for _, frame := range []string{
		`not json`,
		`{"not":"an array"}`,
		`["BOGUS","x"]`,
	} {
		send(t, conn, []byte(frame))
		label, rest := readFrame(t, conn)
		require.Equal(t, "NOTICE", label)
		var msg string
		require.NoError(t, json.Unmarshal(rest[0], &msg))
		require.Equal(t, "Invalid message", msg)
	}
}

func TestAuthKindRejectedAsEvent(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)
	conn := dial(t, url)
	ev := signedEvent(t, signer, 22242, 1000, "")
	sendEvent(t, conn, ev)
	label, rest := readFrame(t, conn)
	require.Equal(t, "OK", label)
	reason := requireOK(t, rest, ev.Id, false)
	require.Equal(t, "AUTH events are not stored", reason)
}

func TestMalformedEventAnsweredWithOK(t *testing.T) {
	url := newRelay(t, &config.C{})
	signer := newSigner(t)
	conn := dial(t, url)
	ev := signedEvent(t, signer, 1, 1000, "no signature")
	frame := fmt.Sprintf(
		`["EVENT",{"id":"%s","pubkey":"%s","created_at":1000,"kind":1,`+
			`"tags":[],"content":"no signature"}]`,
		hex.Enc(ev.Id), hex.Enc(ev.Pubkey),
	)
	send(t, conn, []byte(frame))
	label, rest := readFrame(t, conn)
	require.Equal(t, "OK", label)
	reason := requireOK(t, rest, ev.Id, false)
	require.True(t, strings.HasPrefix(reason, "invalid: "))
}
