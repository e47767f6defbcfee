package okenvelope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	id := make([]byte, 32)
	id[31] = 0x01
	hexId := "0000000000000000000000000000000000000000000000000000000000000001"

	b := NewFrom(id, true, nil).Marshal(nil)
	require.Equal(t, `["OK","`+hexId+`",true,""]`, string(b))

	b = NewFrom(id, false, []byte("blocked: not authorized")).Marshal(nil)
	require.Equal(
		t, `["OK","`+hexId+`",false,"blocked: not authorized"]`, string(b),
	)
}
