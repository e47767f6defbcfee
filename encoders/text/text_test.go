package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNostrEscape(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"plain", "plain"},
		{"line\nbreak", `line\nbreak`},
		{"tab\there", `tab\there`},
		{`quote"inside`, `quote\"inside`},
		{`back\slash`, `back\\slash`},
		{"bell\x07", `bell\u0007`},
		{"unicode ünïcode 🐸", "unicode ünïcode 🐸"},
		{"slash/kept", "slash/kept"},
	} {
		require.Equal(t, tc.want, string(NostrEscape(nil, []byte(tc.in))))
	}
}

func TestUnescapeRoundtrip(t *testing.T) {
	for _, in := range []string{
		"plain",
		"line\nbreak\ttab\rret",
		`quote"and\slash`,
		"control\x01\x02\x1f",
		"emoji 🐸 and ünïcode",
	} {
		escaped := NostrEscape(nil, []byte(in))
		got, err := Unescape(nil, escaped)
		require.NoError(t, err)
		require.Equal(t, in, string(got))
	}
}

func TestUnescapeSurrogatePair(t *testing.T) {
	got, err := Unescape(nil, []byte(`\ud83d\udc38`))
	require.NoError(t, err)
	require.Equal(t, "🐸", string(got))
}

func TestUnescapeRejects(t *testing.T) {
	_, err := Unescape(nil, []byte(`trailing\`))
	require.Error(t, err)
	_, err = Unescape(nil, []byte(`\q`))
	require.Error(t, err)
	_, err = Unescape(nil, []byte(`\u12`))
	require.Error(t, err)
}
