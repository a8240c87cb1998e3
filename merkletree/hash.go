package merkletree

import (
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/msgbox-sys/msgbox-go/crypto"
)

const (
	// Depth is the number of levels between the root and the leaves.
	Depth = 8 * crypto.HashSizeByte

	// LeafIdentifier is the domain separation prefix for leaf hashes.
	LeafIdentifier = 'L'

	// InteriorIdentifier is the domain separation prefix for
	// interior node hashes.
	InteriorIdentifier = 'I'
)

// ErrBadHashLength indicates that a decoded hash has the wrong size.
var ErrBadHashLength = errors.New("[merkletree] Bad hash length")

// Hash is a fixed-width 256-bit value. It is used for keys, leaf values
// and node hashes alike.
type Hash [crypto.HashSizeByte]byte

// ZeroHash is the sentinel value held by every absent key.
var ZeroHash Hash

// emptyHashes[l] is the hash of an empty subtree rooted at level l,
// where level 0 is the root and level Depth is a leaf.
var emptyHashes [Depth + 1]Hash

func init() {
	emptyHashes[Depth] = hashLeaf(ZeroHash)
	for l := Depth - 1; l >= 0; l-- {
		emptyHashes[l] = hashInterior(emptyHashes[l+1], emptyHashes[l+1])
	}
}

// EmptyRoot returns the root of a map in which every key holds
// the sentinel value.
func EmptyRoot() Hash {
	return emptyHashes[0]
}

// HashFromBytes copies b into a Hash. It fails if b is not exactly
// crypto.HashSizeByte bytes long.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != len(h) {
		return h, ErrBadHashLength
	}
	copy(h[:], b)
	return h, nil
}

// Uint64Hash encodes v as a Hash. v occupies the last 8 bytes
// in big endian order, so Uint64Hash(0) equals ZeroHash.
func Uint64Hash(v uint64) Hash {
	var h Hash
	binary.BigEndian.PutUint64(h[len(h)-8:], v)
	return h
}

// Uint64 decodes a Hash built by Uint64Hash. Only the last 8 bytes
// are read.
func (h Hash) Uint64() uint64 {
	return binary.BigEndian.Uint64(h[len(h)-8:])
}

// IsZero reports whether h is the sentinel value.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler using hex encoding.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*h, err = HashFromBytes(b)
	return err
}

func hashLeaf(value Hash) Hash {
	var h Hash
	copy(h[:], crypto.Digest(
		[]byte{LeafIdentifier}, // K_leaf
		value[:],               // v
	))
	return h
}

func hashInterior(left, right Hash) Hash {
	var h Hash
	copy(h[:], crypto.Digest(
		[]byte{InteriorIdentifier}, // K_interior
		left[:],                    // h_left
		right[:],                   // h_right
	))
	return h
}
