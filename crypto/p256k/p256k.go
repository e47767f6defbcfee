// Package p256k implements the signer.I interface over the btcec secp256k1
// library, providing BIP-340 schnorr signatures for nostr events.
package p256k

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"okra.dev/interfaces/signer"
	"okra.dev/utils/chk"
	"okra.dev/utils/errorf"
)

const (
	// SecKeyLen is the length of a raw secret key.
	SecKeyLen = 32
	// PubKeyLen is the length of an x-only public key.
	PubKeyLen = schnorr.PubKeyBytesLen
	// SigLen is the length of a schnorr signature.
	SigLen = schnorr.SignatureSize
)

// Signer is a btcec-backed implementation of signer.I.
type Signer struct {
	secretKey *btcec.PrivateKey
	publicKey *btcec.PublicKey
	skb, pkb  []byte
}

var _ signer.I = &Signer{}

// Generate creates a new keypair.
func (s *Signer) Generate() (err error) {
	if s.secretKey, err = btcec.NewPrivateKey(); chk.E(err) {
		return
	}
	s.skb = s.secretKey.Serialize()
	s.publicKey = s.secretKey.PubKey()
	s.pkb = schnorr.SerializePubKey(s.publicKey)
	return
}

// InitSec initialises the Signer from raw secret key bytes.
func (s *Signer) InitSec(sec []byte) (err error) {
	if len(sec) != SecKeyLen {
		err = errorf.E("sec key must be %d bytes, got %d", SecKeyLen, len(sec))
		return
	}
	s.skb = sec
	s.secretKey, s.publicKey = btcec.PrivKeyFromBytes(sec)
	s.pkb = schnorr.SerializePubKey(s.publicKey)
	return
}

// InitPub initialises a verify-only Signer from an x-only public key.
func (s *Signer) InitPub(pub []byte) (err error) {
	if s.publicKey, err = schnorr.ParsePubKey(pub); err != nil {
		return
	}
	s.pkb = pub
	return
}

// Sec returns the raw secret key bytes.
func (s *Signer) Sec() (b []byte) {
	if s == nil {
		return
	}
	return s.skb
}

// Pub returns the x-only public key bytes.
func (s *Signer) Pub() (b []byte) {
	if s == nil {
		return
	}
	return s.pkb
}

// Sign signs a 32 byte message hash. Requires an initialised secret key.
func (s *Signer) Sign(msg []byte) (sig []byte, err error) {
	if s.secretKey == nil {
		err = errorf.E("p256k: signer not initialized")
		return
	}
	var si *schnorr.Signature
	if si, err = schnorr.Sign(s.secretKey, msg); chk.E(err) {
		return
	}
	sig = si.Serialize()
	return
}

// Verify checks a signature over a 32 byte message hash. Only requires the
// public key to be initialised.
func (s *Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if s.publicKey == nil {
		err = errorf.E("p256k: pubkey not initialized")
		return
	}
	var si *schnorr.Signature
	if si, err = schnorr.ParseSignature(sig); err != nil {
		return
	}
	valid = si.Verify(msg, s.publicKey)
	return
}

// Zero wipes the secret key bytes.
func (s *Signer) Zero() {
	if s.secretKey != nil {
		s.secretKey.Zero()
	}
	for i := range s.skb {
		s.skb[i] = 0
	}
}
