package publish

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"okra.dev/protocol/ws"
)

func pk(b byte) []byte {
	p := make([]byte, 32)
	p[0] = b
	return p
}

func TestRegisterAndCandidates(t *testing.T) {
	a := NewAuthors()
	l := &ws.Listener{}
	a.Register(l, "sub1", [][]byte{pk(1), pk(2)})
	require.Len(t, a.Candidates(pk(1)), 1)
	require.Len(t, a.Candidates(pk(2)), 1)
	require.Empty(t, a.Candidates(pk(3)))
	require.Equal(t, 2, a.Size())
}

func TestRefcountAcrossFilters(t *testing.T) {
	a := NewAuthors()
	l := &ws.Listener{}
	// the same author named by two filters of one subscription
	a.Register(l, "sub1", [][]byte{pk(1), pk(1)})
	require.Len(t, a.Candidates(pk(1)), 1)
	a.Unregister(l, "sub1")
	require.Empty(t, a.Candidates(pk(1)))
	require.Equal(t, 0, a.Size())
}

func TestReplaceSubscription(t *testing.T) {
	a := NewAuthors()
	l := &ws.Listener{}
	a.Register(l, "sub1", [][]byte{pk(1)})
	a.Register(l, "sub1", [][]byte{pk(2)})
	require.Empty(t, a.Candidates(pk(1)))
	require.Len(t, a.Candidates(pk(2)), 1)
}

func TestSharedAuthorAcrossConnections(t *testing.T) {
	a := NewAuthors()
	l1 := &ws.Listener{}
	l2 := &ws.Listener{}
	a.Register(l1, "s", [][]byte{pk(1)})
	a.Register(l2, "s", [][]byte{pk(1)})
	require.Len(t, a.Candidates(pk(1)), 2)
	a.Unregister(l1, "s")
	cands := a.Candidates(pk(1))
	require.Len(t, cands, 1)
	require.Same(t, l2, cands[0].L)
}

func TestUnregisterAll(t *testing.T) {
	a := NewAuthors()
	l := &ws.Listener{}
	a.Register(l, "s1", [][]byte{pk(1)})
	a.Register(l, "s2", [][]byte{pk(1), pk(2)})
	a.UnregisterAll(l)
	require.Empty(t, a.Candidates(pk(1)))
	require.Empty(t, a.Candidates(pk(2)))
	require.Equal(t, 0, a.Size())
	// a second pass is harmless
	a.UnregisterAll(l)
}

func TestConcurrentRegisterUnregister(t *testing.T) {
	a := NewAuthors()
	author := pk(1)
	for i := 0; i < 2000; i++ {
		l1 := &ws.Listener{}
		l2 := &ws.Listener{}
		a.Register(l1, "s", [][]byte{author})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Unregister(l1, "s")
		}()
		go func() {
			defer wg.Done()
			a.Register(l2, "s", [][]byte{author})
		}()
		wg.Wait()
		// the surviving registration must still be reachable
		cands := a.Candidates(author)
		require.Len(t, cands, 1)
		require.Same(t, l2, cands[0].L)
		a.Unregister(l2, "s")
	}
	require.Equal(t, 0, a.Size())
}

func TestUnregisterUnknown(t *testing.T) {
	a := NewAuthors()
	l := &ws.Listener{}
	a.Unregister(l, "nope")
	require.Equal(t, 0, a.Size())
}
