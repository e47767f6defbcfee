package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"okra.dev/encoders/event"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tag"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
)

func sampleEvent() *event.E {
	id := make([]byte, 32)
	id[0] = 0xab
	pk := make([]byte, 32)
	pk[0] = 0xcd
	return &event.E{
		Id:        id,
		Pubkey:    pk,
		CreatedAt: timestamp.New(500),
		Kind:      kind.New(1),
		Tags: tags.New(
			tag.New("e", "referenced"),
			tag.New("p", "someone"),
		),
		Content: []byte("hi"),
	}
}

func TestMatchesEmptyFilter(t *testing.T) {
	f := New()
	require.True(t, f.Matches(sampleEvent()))
	require.False(t, f.Matches(nil))
}

func TestMatchesIds(t *testing.T) {
	ev := sampleEvent()
	f := New()
	f.Ids.Field = append(f.Ids.Field, ev.Id)
	require.True(t, f.Matches(ev))
	f = New()
	f.Ids.Field = append(f.Ids.Field, make([]byte, 32))
	require.False(t, f.Matches(ev))
}

func TestMatchesAuthorsAndKinds(t *testing.T) {
	ev := sampleEvent()
	f := New()
	f.Authors.Field = append(f.Authors.Field, ev.Pubkey)
	f.Kinds.K = append(f.Kinds.K, kind.New(1))
	require.True(t, f.Matches(ev))
	f.Kinds.K[0] = kind.New(2)
	require.False(t, f.Matches(ev))
}

func TestMatchesTags(t *testing.T) {
	ev := sampleEvent()
	f := New()
	f.Tags.AppendTags(tag.New("#e", "referenced"))
	require.True(t, f.Matches(ev))
	f = New()
	f.Tags.AppendTags(tag.New("#e", "other"))
	require.False(t, f.Matches(ev))
	// a tag query with no values matches nothing
	f = New()
	f.Tags.AppendTags(tag.New("#e"))
	require.False(t, f.Matches(ev))
}

func TestMatchesTimeRange(t *testing.T) {
	ev := sampleEvent()
	f := New()
	f.Since = timestamp.New(400)
	f.Until = timestamp.New(600)
	require.True(t, f.Matches(ev))
	f.Since = timestamp.New(501)
	require.False(t, f.Matches(ev))
	f.Since = nil
	f.Until = timestamp.New(499)
	require.False(t, f.Matches(ev))
}

func TestUnmarshal(t *testing.T) {
	raw := []byte(`{
		"ids": ["` + hexOf(0xab) + `"],
		"authors": ["` + hexOf(0xcd) + `"],
		"kinds": [1, 7],
		"#e": ["referenced"],
		"since": 400,
		"until": 600,
		"limit": 10
	}`)
	f := New()
	require.NoError(t, f.Unmarshal(raw))
	require.Equal(t, 1, f.Ids.Len())
	require.Equal(t, 1, f.Authors.Len())
	require.Equal(t, 2, f.Kinds.Len())
	require.Equal(t, int64(400), f.Since.I64())
	require.Equal(t, int64(600), f.Until.I64())
	require.NotNil(t, f.Limit)
	require.Equal(t, uint(10), *f.Limit)
	require.True(t, f.Matches(sampleEvent()))
	require.True(t, f.HasAuthors())
}

func TestUnmarshalRejects(t *testing.T) {
	f := New()
	require.Error(t, f.Unmarshal([]byte(`{"bogus": 1}`)))
	require.Error(t, f.Unmarshal([]byte(`{"ids": ["zz"]}`)))
	require.Error(t, f.Unmarshal([]byte(`{"ids": ["0011"]}`)))
	require.Error(t, f.Unmarshal([]byte(`{"kinds": [70000]}`)))
	require.Error(t, f.Unmarshal([]byte(`[1,2]`)))
}

func TestMarshalRoundtrip(t *testing.T) {
	raw := []byte(`{"authors":["` + hexOf(0xcd) + `"],"kinds":[1],"limit":5}`)
	f := New()
	require.NoError(t, f.Unmarshal(raw))
	out := f.Marshal(nil)
	f2 := New()
	require.NoError(t, f2.Unmarshal(out))
	require.Equal(t, f.Authors.Field, f2.Authors.Field)
	require.Equal(t, f.Kinds.ToUint16(), f2.Kinds.ToUint16())
	require.Equal(t, *f.Limit, *f2.Limit)
}

func hexOf(first byte) string {
	b := make([]byte, 32)
	b[0] = first
	const digits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0xf]
	}
	return string(out)
}
