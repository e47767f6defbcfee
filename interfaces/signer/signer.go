// Package signer defines the interface for BIP-340 key operations so the
// event codec does not depend on a specific secp256k1 implementation.
package signer

// I is a schnorr signing and verification keypair.
type I interface {
	// Generate creates a fresh keypair.
	Generate() (err error)
	// InitSec initialises the signer from raw secret key bytes.
	InitSec(sec []byte) (err error)
	// InitPub initialises a verify-only signer from a 32 byte x-only pubkey.
	InitPub(pub []byte) (err error)
	// Sec returns the raw secret key bytes.
	Sec() (b []byte)
	// Pub returns the 32 byte x-only public key.
	Pub() (b []byte)
	// Sign produces a 64 byte schnorr signature over msg (a 32 byte hash).
	Sign(msg []byte) (sig []byte, err error)
	// Verify checks a 64 byte schnorr signature over msg.
	Verify(msg, sig []byte) (valid bool, err error)
	// Zero wipes the secret key.
	Zero()
}
