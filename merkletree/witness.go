package merkletree

import (
	"errors"

	"github.com/msgbox-sys/msgbox-go/utils"
)

var (
	// ErrCommitmentMismatch indicates that a witness, together with
	// the claimed leaf value, does not reproduce the commitment.
	ErrCommitmentMismatch = errors.New("[merkletree] Witness does not match the commitment")
	// ErrKeyMismatch indicates that a witness authenticates a
	// different key than the requested one.
	ErrKeyMismatch = errors.New("[merkletree] Witness key does not match the requested key")
	// ErrInvalidWitness indicates a missing witness.
	ErrInvalidWitness = errors.New("[merkletree] Invalid witness")
)

// Witness is the authentication path of a single key. Siblings[i] is
// the hash of the sibling of the node at level i+1 on the key's path,
// so Siblings[Depth-1] is the leaf's sibling.
type Witness struct {
	Key      Hash
	Siblings [Depth]Hash
}

// ComputeRootAndKey folds the siblings of the witness over the leaf
// holding value and returns the resulting root, together with the
// key the witness authenticates.
func (w *Witness) ComputeRootAndKey(value Hash) (Hash, Hash) {
	h := hashLeaf(value)
	for i := Depth - 1; i >= 0; i-- {
		if utils.GetNthBit(w.Key[:], uint32(i)) { // right child
			h = hashInterior(w.Siblings[i], h)
		} else {
			h = hashInterior(h, w.Siblings[i])
		}
	}
	return h, w.Key
}

// VerifyMembership reports whether w proves that w.Key holds value
// in the map committed to by commitment.
func VerifyMembership(commitment Hash, w *Witness, value Hash) bool {
	if w == nil {
		return false
	}
	root, _ := w.ComputeRootAndKey(value)
	return root == commitment
}

// VerifyAndUpdate checks that w proves key holding old under commitment
// and returns the commitment that results from setting key to new.
// Membership is checked first: ErrCommitmentMismatch takes precedence
// over ErrKeyMismatch when both apply.
// On failure commitment is returned unchanged along with the error.
func VerifyAndUpdate(commitment Hash, w *Witness, key, old, new Hash) (Hash, error) {
	if w == nil {
		return commitment, ErrInvalidWitness
	}
	if !VerifyMembership(commitment, w, old) {
		return commitment, ErrCommitmentMismatch
	}
	if w.Key != key {
		return commitment, ErrKeyMismatch
	}
	root, _ := w.ComputeRootAndKey(new)
	return root, nil
}
