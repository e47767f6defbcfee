package relay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"okra.dev/app/config"
	"okra.dev/encoders/event"
	"okra.dev/encoders/filter"
	"okra.dev/encoders/filters"
	"okra.dev/encoders/kind"
	"okra.dev/encoders/tags"
	"okra.dev/encoders/timestamp"
	"okra.dev/utils/context"
)

func testServer(allowed ...[]byte) *Server {
	c, cancel := context.Cancel(context.Bg())
	s := &Server{
		Ctx:    c,
		Cancel: cancel,
		C:      &config.C{},
	}
	s.SetPolicy(&Policy{Allowed: allowed})
	return s
}

func pub(b byte) []byte {
	p := make([]byte, 32)
	p[0] = b
	return p
}

func evFrom(pk []byte) *event.E {
	return &event.E{
		Id:        make([]byte, 32),
		Pubkey:    pk,
		CreatedAt: timestamp.Now(),
		Kind:      kind.New(1),
		Tags:      tags.New(),
	}
}

func TestAcceptEventOpenRelay(t *testing.T) {
	s := testServer()
	accept, _ := s.AcceptEvent(s.Ctx, evFrom(pub(1)), "remote", nil)
	require.True(t, accept)
	require.True(t, s.Authorized(pub(9)))
}

func TestAcceptEventAllowList(t *testing.T) {
	s := testServer(pub(1))
	accept, _ := s.AcceptEvent(s.Ctx, evFrom(pub(1)), "remote", nil)
	require.True(t, accept)
	accept, notice := s.AcceptEvent(s.Ctx, evFrom(pub(2)), "remote", nil)
	require.False(t, accept)
	require.Equal(t, "blocked: not authorized", notice)
	require.False(t, s.Authorized(pub(2)))
}

func TestAcceptReqRequiresAuthors(t *testing.T) {
	s := testServer()
	withAuthors := filter.New()
	withAuthors.Authors.Field = append(withAuthors.Authors.Field, pub(1))
	allowed, _ := s.AcceptReq(
		s.Ctx, nil, filters.New(withAuthors), nil,
	)
	require.True(t, allowed)

	bare := filter.New()
	allowed, notice := s.AcceptReq(s.Ctx, nil, filters.New(bare), nil)
	require.False(t, allowed)
	require.Equal(t, AuthorsRequiredNotice, notice)

	// one missing authors filter rejects the whole REQ
	allowed, _ = s.AcceptReq(
		s.Ctx, nil, filters.New(withAuthors, bare), nil,
	)
	require.False(t, allowed)

	// an empty filter list is rejected outright
	allowed, _ = s.AcceptReq(s.Ctx, nil, filters.New(), nil)
	require.False(t, allowed)
}

func TestPolicySwapVisibleImmediately(t *testing.T) {
	s := testServer()
	require.False(t, s.AuthRequired())
	require.True(t, s.Authorized(pub(2)))

	s.SetPolicy(&Policy{AuthRequired: true, Allowed: [][]byte{pub(1)}})
	require.True(t, s.AuthRequired())
	require.True(t, s.Authorized(pub(1)))
	require.False(t, s.Authorized(pub(2)))

	s.SetPolicy(&Policy{})
	require.False(t, s.AuthRequired())
	require.True(t, s.Authorized(pub(2)))
}
