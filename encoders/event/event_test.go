package event

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"okra.dev/crypto/p256k"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tag"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
)

func testEvent(t *testing.T) (ev *E, signer *p256k.Signer) {
	t.Helper()
	signer = new(p256k.Signer)
	require.NoError(t, signer.Generate())
	ev = &E{
		CreatedAt: timestamp.New(1700000000),
		Kind:      kind.TextNote,
		Tags: tags.New(
			tag.New("e", "5c83da77af1dec6d7289834998ad7aafbd9e2191396d75ec3cc27f5a77226f36"),
			tag.New("t", "greetings"),
		),
		Content: []byte("hello\nworld \"quoted\""),
	}
	require.NoError(t, ev.Sign(signer))
	return
}

func TestCanonicalForm(t *testing.T) {
	ev := &E{
		Pubkey:    make([]byte, 32),
		CreatedAt: timestamp.New(1),
		Kind:      kind.New(1),
		Tags:      tags.New(),
		Content:   []byte("a"),
	}
	want := `[0,"0000000000000000000000000000000000000000000000000000000000000000",1,1,[],"a"]`
	require.Equal(t, want, string(ev.ToCanonical(nil)))
}

func TestCanonicalEscaping(t *testing.T) {
	ev := &E{
		Pubkey:    make([]byte, 32),
		CreatedAt: timestamp.New(1),
		Kind:      kind.New(1),
		Tags:      tags.New(),
		Content:   []byte("line\nbreak\ttab \"quote\" \\slash"),
	}
	want := `[0,"0000000000000000000000000000000000000000000000000000000000000000",1,1,[],"line\nbreak\ttab \"quote\" \\slash"]`
	require.Equal(t, want, string(ev.ToCanonical(nil)))
}

func TestSignVerify(t *testing.T) {
	ev, _ := testEvent(t)
	require.Equal(t, ev.GetIDBytes(), ev.Id)
	valid, err := ev.Verify()
	require.NoError(t, err)
	require.True(t, valid)
	// flipping a content byte invalidates the id
	ev.Content[0] ^= 1
	require.NotEqual(t, ev.GetIDBytes(), ev.Id)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	ev, _ := testEvent(t)
	other := new(p256k.Signer)
	require.NoError(t, other.Generate())
	ev.Pubkey = other.Pub()
	valid, err := ev.Verify()
	require.NoError(t, err)
	require.False(t, valid)
}

func TestDTag(t *testing.T) {
	ev := &E{Tags: tags.New(tag.New("a", "x"), tag.New("d", "ident"))}
	require.Equal(t, []byte("ident"), ev.DTag())
	ev = &E{Tags: tags.New(tag.New("a", "x"))}
	require.Empty(t, ev.DTag())
	ev = &E{Tags: tags.New(tag.New("d"))}
	require.Empty(t, ev.DTag())
}

func TestSortOrder(t *testing.T) {
	evs := S{
		{Id: []byte{1}, CreatedAt: timestamp.New(10)},
		{Id: []byte{2}, CreatedAt: timestamp.New(30)},
		{Id: []byte{3}, CreatedAt: timestamp.New(20)},
		{Id: []byte{4}, CreatedAt: timestamp.New(20)},
	}
	sort.Sort(evs)
	require.Equal(t, int64(30), evs[0].CreatedAt.I64())
	// equal timestamps break to the greater id
	require.Equal(t, []byte{4}, evs[1].Id)
	require.Equal(t, []byte{3}, evs[2].Id)
	require.Equal(t, int64(10), evs[3].CreatedAt.I64())
}
