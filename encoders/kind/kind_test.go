package kind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		k    uint16
		want Class
	}{
		{0, Replaceable},
		{1, Regular},
		{3, Replaceable},
		{4, Regular},
		{999, Regular},
		{1000, Regular},
		{9999, Regular},
		{10000, Replaceable},
		{19999, Replaceable},
		{20000, Ephemeral},
		{22241, Ephemeral},
		{22242, Authentication},
		{22243, Ephemeral},
		{29999, Ephemeral},
		{30000, ParameterizedReplaceable},
		{39999, ParameterizedReplaceable},
		{40000, Regular},
		{65535, Regular},
	} {
		require.Equal(
			t, tc.want, New(tc.k).Classify(), "kind %d", tc.k,
		)
	}
}

func TestIsAuth(t *testing.T) {
	require.True(t, ClientAuthentication.IsAuth())
	// the auth kind sits inside the ephemeral range but is not stored or
	// treated as ephemeral
	require.True(t, ClientAuthentication.IsEphemeral())
	require.Equal(t, Authentication, ClientAuthentication.Classify())
}
