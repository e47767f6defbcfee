package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"okra.dev/crypto/p256k"
	"okra.dev/encoders/timestamp"
)

const relayURL = "wss://example.com"

func TestValidate(t *testing.T) {
	signer := new(p256k.Signer)
	require.NoError(t, signer.Generate())
	challenge := GenerateChallenge()
	ev := CreateUnsigned(signer.Pub(), challenge, relayURL)
	require.NoError(t, ev.Sign(signer))
	ok, err := Validate(ev, challenge, relayURL)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateWrongChallenge(t *testing.T) {
	signer := new(p256k.Signer)
	require.NoError(t, signer.Generate())
	ev := CreateUnsigned(signer.Pub(), GenerateChallenge(), relayURL)
	require.NoError(t, ev.Sign(signer))
	ok, err := Validate(ev, GenerateChallenge(), relayURL)
	require.Error(t, err)
	require.False(t, ok)
}

func TestValidateWrongRelay(t *testing.T) {
	signer := new(p256k.Signer)
	require.NoError(t, signer.Generate())
	challenge := GenerateChallenge()
	ev := CreateUnsigned(signer.Pub(), challenge, "wss://other.example")
	require.NoError(t, ev.Sign(signer))
	ok, err := Validate(ev, challenge, relayURL)
	require.Error(t, err)
	require.False(t, ok)
}

func TestValidateStaleTimestamp(t *testing.T) {
	signer := new(p256k.Signer)
	require.NoError(t, signer.Generate())
	challenge := GenerateChallenge()
	ev := CreateUnsigned(signer.Pub(), challenge, relayURL)
	ev.CreatedAt = timestamp.New(ev.CreatedAt.I64() - 3600)
	require.NoError(t, ev.Sign(signer))
	ok, err := Validate(ev, challenge, relayURL)
	require.Error(t, err)
	require.False(t, ok)
}

func TestValidateTamperedEvent(t *testing.T) {
	signer := new(p256k.Signer)
	require.NoError(t, signer.Generate())
	challenge := GenerateChallenge()
	ev := CreateUnsigned(signer.Pub(), challenge, relayURL)
	require.NoError(t, ev.Sign(signer))
	ev.CreatedAt = timestamp.New(ev.CreatedAt.I64() + 1)
	ok, err := Validate(ev, challenge, relayURL)
	require.Error(t, err)
	require.False(t, ok)
}

func TestChallengeUniqueness(t *testing.T) {
	a := GenerateChallenge()
	b := GenerateChallenge()
	require.Len(t, a, ChallengeLen*2)
	require.NotEqual(t, a, b)
}
