// Package crypto contains the cryptographic routines used by msgbox, to:
// - hash arbitrary data (`Digest`) using sha3 (shake128)
// - generate a random slice of bytes
// - sign data and verify signatures using ed25519 (see the sign subpackage).
package crypto
