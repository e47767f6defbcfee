package envelopes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	label, rest, err := Identify([]byte(`["EVENT",{"kind":1}]`))
	require.NoError(t, err)
	require.Equal(t, "EVENT", label)
	require.Len(t, rest, 1)

	label, rest, err = Identify([]byte(`["REQ","sub",{},{}]`))
	require.NoError(t, err)
	require.Equal(t, "REQ", label)
	require.Len(t, rest, 3)
}

func TestIdentifyRejects(t *testing.T) {
	for _, raw := range []string{
		`{"not":"an array"}`,
		`[]`,
		`[1,2]`,
		`not json`,
	} {
		_, _, err := Identify([]byte(raw))
		require.Error(t, err, "input %s", raw)
	}
}

func TestMarshal(t *testing.T) {
	b := Marshal(nil, "NOTICE", func(dst []byte) []byte {
		return append(dst, `"hello"`...)
	})
	require.Equal(t, `["NOTICE","hello"]`, string(b))
}
