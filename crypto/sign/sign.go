// Package sign wraps ed25519 signing keys used to authenticate
// transactions submitted to the ledger.
package sign

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/ed25519"
)

const (
	// PrivateKeySize is the size of a signing private key in bytes.
	PrivateKeySize = ed25519.PrivateKeySize
	// PublicKeySize is the size of a signing public key in bytes.
	PublicKeySize = ed25519.PublicKeySize
)

// ErrGetPubKey indicates that the public key could not be derived
// from a malformed private key.
var ErrGetPubKey = errors.New("[sign] Get public key error")

// PrivateKey is an ed25519 private key.
type PrivateKey ed25519.PrivateKey

// PublicKey is an ed25519 public key.
type PublicKey ed25519.PublicKey

// GenerateKey generates a private key using the randomness from rnd.
// If rnd is nil, crypto/rand.Reader is used.
func GenerateKey(rnd io.Reader) (PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	_, sk, err := ed25519.GenerateKey(rnd)
	return PrivateKey(sk), err
}

// Sign signs the message with the private key.
func (key PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(key), message)
}

// Public extracts the public key from the private key.
func (key PrivateKey) Public() (PublicKey, bool) {
	if len(key) != PrivateKeySize {
		return nil, false
	}
	pk, ok := ed25519.PrivateKey(key).Public().(ed25519.PublicKey)
	return PublicKey(pk), ok
}

// Verify reports whether sig is a valid signature of message by pk.
// A malformed public key never verifies.
func (pk PublicKey) Verify(message, sig []byte) bool {
	if len(pk) != PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), message, sig)
}
