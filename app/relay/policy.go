package relay

import (
	"okra.dev/app/config"
	"okra.dev/encoders/hex"
	"okra.dev/utils"
	"okra.dev/utils/log"
)

// Policy is the runtime-mutable part of the relay's behaviour. A value is
// immutable once published: readers load a snapshot and writers install a
// complete replacement, so every protocol decision sees a consistent set of
// options without locking.
type Policy struct {
	AuthRequired bool
	Allowed      [][]byte
	Name         string
	Description  string
	Pubkey       string
	Contact      string
}

var permissive = &Policy{}

// policyFromConfig builds the initial policy. Malformed allow list entries
// are skipped with a warning rather than refusing to start.
func policyFromConfig(c *config.C) (p *Policy) {
	p = &Policy{
		AuthRequired: c.AuthRequired,
		Name:         c.Name,
		Description:  c.Description,
		Pubkey:       c.Pubkey,
		Contact:      c.Contact,
	}
	for _, v := range c.AllowedPubkeys {
		pk, err := hex.Dec(v)
		if err != nil || len(pk) != 32 {
			log.W.F("ignoring malformed allowed pubkey %q", v)
			continue
		}
		p.Allowed = append(p.Allowed, pk)
	}
	return
}

// Authorizes reports whether the pubkey passes the allow list. An empty list
// authorizes everyone.
func (p *Policy) Authorizes(pubkey []byte) bool {
	if len(p.Allowed) == 0 {
		return true
	}
	for _, pk := range p.Allowed {
		if utils.FastEqual(pk, pubkey) {
			return true
		}
	}
	return false
}

// Policy returns the current policy snapshot. The returned value must not be
// mutated; copy it, change the copy and SetPolicy the result.
func (s *Server) Policy() *Policy {
	if p := s.policy.Load(); p != nil {
		return p
	}
	return permissive
}

// SetPolicy publishes a new policy. Sessions observe it on their next
// protocol decision.
func (s *Server) SetPolicy(p *Policy) { s.policy.Store(p) }
