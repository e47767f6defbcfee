package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) (b []byte) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return
}

func TestMarshalUnmarshal(t *testing.T) {
	ev, _ := testEvent(t)
	b := ev.Marshal(nil)
	var got E
	require.NoError(t, got.Unmarshal(b))
	require.Equal(t, ev.Id, got.Id)
	require.Equal(t, ev.Pubkey, got.Pubkey)
	require.Equal(t, ev.CreatedAt.I64(), got.CreatedAt.I64())
	require.Equal(t, ev.Kind.K, got.Kind.K)
	require.Equal(t, ev.Content, got.Content)
	require.Equal(t, ev.Sig, got.Sig)
	require.Equal(t, ev.Tags.ToStringsSlice(), got.Tags.ToStringsSlice())
	valid, err := got.Verify()
	require.NoError(t, err)
	require.True(t, valid)
}

func TestUnmarshalMissingFields(t *testing.T) {
	ev, _ := testEvent(t)
	full := ev.Marshal(nil)
	var probe E
	require.NoError(t, probe.Unmarshal(full))
	for _, field := range []string{
		"id", "pubkey", "created_at", "kind", "tags", "content", "sig",
	} {
		t.Run(field, func(t *testing.T) {
			partial := map[string]any{
				"id":         probe.IdString(),
				"pubkey":     probe.PubKeyString(),
				"created_at": probe.CreatedAt.I64(),
				"kind":       probe.Kind.K,
				"tags":       probe.Tags.ToStringsSlice(),
				"content":    string(probe.Content),
				"sig":        "00",
			}
			delete(partial, field)
			b := mustJSON(t, partial)
			var got E
			err := got.Unmarshal(b)
			require.Error(t, err)
			require.Contains(t, err.Error(), "missing field: "+field)
		})
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	var ev E
	require.Error(
		t, ev.Unmarshal([]byte(`{"id":1}`)),
	)
	require.Error(
		t, ev.Unmarshal(
			[]byte(`{"id":"zz","pubkey":"00","created_at":1,"kind":1,"tags":[],"content":"","sig":"00"}`),
		),
	)
	// kind out of range
	require.Error(
		t, ev.Unmarshal(
			[]byte(`{"id":"`+zeros(64)+`","pubkey":"`+zeros(64)+
				`","created_at":1,"kind":70000,"tags":[],"content":"","sig":"`+
				zeros(128)+`"}`),
		),
	)
	// wrong id length
	require.Error(
		t, ev.Unmarshal(
			[]byte(`{"id":"00","pubkey":"`+zeros(64)+
				`","created_at":1,"kind":1,"tags":[],"content":"","sig":"`+
				zeros(128)+`"}`),
		),
	)
}

func zeros(n int) (s string) {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
