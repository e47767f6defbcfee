package publish

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"okra.dev/protocol/ws"
)

// Key identifies one subscription on one connection.
type Key struct {
	L  *ws.Listener
	Id string
}

// refSet is the set of subscriptions listening for one author, with a count
// per subscription of how many of its filters name that author.
type refSet struct {
	mu   sync.Mutex
	refs map[Key]int
}

// subAuthors records, per subscription id, the author list it registered
// with, so unregistering can decrement the right references.
type subAuthors struct {
	mu      sync.Mutex
	authors map[string][][]byte
}

// Authors is the author-keyed subscription index. Every subscription names
// at least one author in each of its filters, so an event's author pubkey
// locates every subscription that could match it.
type Authors struct {
	byAuthor *xsync.MapOf[string, *refSet]
	bySub    *xsync.MapOf[*ws.Listener, *subAuthors]
}

// NewAuthors creates an empty index.
func NewAuthors() *Authors {
	return &Authors{
		byAuthor: xsync.NewMapOf[string, *refSet](),
		bySub:    xsync.NewMapOf[*ws.Listener, *subAuthors](),
	}
}

// Register adds a subscription under every author it names. authors carries
// one entry per filter mention, so an author named by two filters of the
// same subscription is counted twice. A subscription id already registered
// on the connection is replaced.
func (a *Authors) Register(l *ws.Listener, id string, authors [][]byte) {
	sa, _ := a.bySub.LoadOrCompute(
		l, func() *subAuthors {
			return &subAuthors{authors: make(map[string][][]byte)}
		},
	)
	sa.mu.Lock()
	prev := sa.authors[id]
	cp := make([][]byte, len(authors))
	copy(cp, authors)
	sa.authors[id] = cp
	sa.mu.Unlock()
	if prev != nil {
		a.drop(Key{L: l, Id: id}, prev)
	}
	k := Key{L: l, Id: id}
	for _, pk := range authors {
		// Compute serializes with drop on the same author entry, so an
		// increment can never land on a set that is about to be deleted.
		a.byAuthor.Compute(
			string(pk), func(rs *refSet, loaded bool) (*refSet, bool) {
				if !loaded {
					rs = &refSet{refs: make(map[Key]int)}
				}
				rs.mu.Lock()
				rs.refs[k]++
				rs.mu.Unlock()
				return rs, false
			},
		)
	}
}

// Unregister removes one subscription from the index.
func (a *Authors) Unregister(l *ws.Listener, id string) {
	sa, ok := a.bySub.Load(l)
	if !ok {
		return
	}
	sa.mu.Lock()
	authors := sa.authors[id]
	delete(sa.authors, id)
	empty := len(sa.authors) == 0
	sa.mu.Unlock()
	if authors != nil {
		a.drop(Key{L: l, Id: id}, authors)
	}
	if empty {
		a.bySub.Delete(l)
	}
}

// UnregisterAll removes every subscription of a connection, used when it
// disconnects.
func (a *Authors) UnregisterAll(l *ws.Listener) {
	sa, ok := a.bySub.LoadAndDelete(l)
	if !ok {
		return
	}
	sa.mu.Lock()
	all := sa.authors
	sa.authors = make(map[string][][]byte)
	sa.mu.Unlock()
	for id, authors := range all {
		a.drop(Key{L: l, Id: id}, authors)
	}
}

// drop decrements the reference for every author mention of a subscription,
// deleting exhausted entries. The emptiness check and the map delete happen
// inside Compute, so a Register racing on the same author either lands
// before the delete decision or recreates the entry afterwards.
func (a *Authors) drop(k Key, authors [][]byte) {
	for _, pk := range authors {
		a.byAuthor.Compute(
			string(pk), func(rs *refSet, loaded bool) (*refSet, bool) {
				if !loaded {
					return nil, true
				}
				rs.mu.Lock()
				rs.refs[k]--
				if rs.refs[k] <= 0 {
					delete(rs.refs, k)
				}
				gone := len(rs.refs) == 0
				rs.mu.Unlock()
				return rs, gone
			},
		)
	}
}

// Candidates returns the subscriptions listening for the given author. The
// caller still re-checks the full filters before delivering.
func (a *Authors) Candidates(pubkey []byte) (out []Key) {
	rs, ok := a.byAuthor.Load(string(pubkey))
	if !ok {
		return
	}
	rs.mu.Lock()
	out = make([]Key, 0, len(rs.refs))
	for k := range rs.refs {
		out = append(out, k)
	}
	rs.mu.Unlock()
	return
}

// Size returns the number of distinct authors currently indexed.
func (a *Authors) Size() int { return a.byAuthor.Size() }
