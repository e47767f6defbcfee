// Package kind classifies nostr event kinds into their storage classes:
// regular, replaceable, ephemeral and parameterized replaceable, plus the
// NIP-42 client authentication kind which is consumed by the session and
// never stored.
package kind

import (
	"strconv"
)

// T is an event kind code.
type T struct {
	K uint16
}

// New creates a kind from a code.
func New(k uint16) *T { return &T{K: k} }

// Well-known kinds referenced by name in the relay.
var (
	ProfileMetadata      = New(0)
	TextNote             = New(1)
	FollowList           = New(3)
	ClientAuthentication = New(22242)
)

// Class is the storage class of a kind.
type Class int

const (
	Regular Class = iota
	Replaceable
	Ephemeral
	ParameterizedReplaceable
	Authentication
)

// ToInt returns the kind code as an int.
func (k *T) ToInt() int { return int(k.K) }

// Equal reports whether two kinds carry the same code.
func (k *T) Equal(other *T) bool { return k != nil && other != nil && k.K == other.K }

// IsAuth reports whether the kind is the NIP-42 client authentication kind.
func (k *T) IsAuth() bool { return k.K == ClientAuthentication.K }

// IsReplaceable reports whether only the latest event per (pubkey, kind) is
// kept: kinds 0, 3 and the range [10000, 20000).
func (k *T) IsReplaceable() bool {
	return k.K == 0 || k.K == 3 || (k.K >= 10000 && k.K < 20000)
}

// IsEphemeral reports whether the event is broadcast but never stored: the
// range [20000, 30000). The authentication kind sits inside this range and is
// classified first by Classify.
func (k *T) IsEphemeral() bool { return k.K >= 20000 && k.K < 30000 }

// IsParameterizedReplaceable reports whether only the latest event per
// (pubkey, kind, d tag) is kept: the range [30000, 40000).
func (k *T) IsParameterizedReplaceable() bool {
	return k.K >= 30000 && k.K < 40000
}

// Classify returns the storage class of the kind. The authentication kind
// takes precedence over the ephemeral range that contains it; everything
// outside the defined ranges is treated as regular.
func (k *T) Classify() Class {
	switch {
	case k.IsAuth():
		return Authentication
	case k.IsReplaceable():
		return Replaceable
	case k.IsEphemeral():
		return Ephemeral
	case k.IsParameterizedReplaceable():
		return ParameterizedReplaceable
	default:
		return Regular
	}
}

// Marshal appends the decimal rendering of the kind to dst.
func (k *T) Marshal(dst []byte) []byte {
	return strconv.AppendUint(dst, uint64(k.K), 10)
}
