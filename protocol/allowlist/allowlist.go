// This module implements an owner-curated allow-list of addresses and
// the message deposit that only listed addresses may perform.
// Both are committed as sparse Merkle maps: a listed address holds
// the value Present, and a depositor's leaf holds its message.
// The allow-list is bounded; entries cannot be removed.

package allowlist

import (
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/validator"
)

// DefaultCapacity is the number of addresses an allow-list accepts
// unless configured otherwise.
const DefaultCapacity = 100

// Present is the leaf value of a listed address.
var Present = merkletree.Uint64Hash(1)

// State is the committed state of the allow-list.
type State struct {
	Root  merkletree.Hash
	Count uint64
}

// NewState returns the state of an empty allow-list.
func NewState() State {
	return State{Root: merkletree.EmptyRoot()}
}

// MessageState is the committed state of the deposited messages.
type MessageState struct {
	Root  merkletree.Hash
	Count uint64
}

// NewMessageState returns the state of an empty message map.
func NewMessageState() MessageState {
	return MessageState{Root: merkletree.EmptyRoot()}
}

// A Gate applies the allow-list transitions. It holds no state
// besides its configuration.
type Gate struct {
	Capacity uint64
}

// New constructs a Gate admitting at most capacity addresses.
// A zero capacity selects DefaultCapacity.
func New(capacity uint64) *Gate {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Gate{Capacity: capacity}
}

// AddAddress lists the address whose key is key, and returns the
// resulting state.
//
// Only the owner may add addresses: if callerIsOwner is false,
// AddAddress returns protocol.ErrAuthorization. Once Capacity
// addresses are listed, it returns protocol.ErrCapacity.
// w must prove that key is not listed yet under st.Root; an already
// listed key or a stale witness yields protocol.ErrAlreadyExists.
// On any error st is returned unchanged.
func (g *Gate) AddAddress(st State, callerIsOwner bool, key merkletree.Hash,
	w *merkletree.Witness) (State, error) {
	if !callerIsOwner {
		return st, protocol.ErrAuthorization
	}
	if st.Count >= g.Capacity {
		return st, protocol.ErrCapacity
	}
	root, err := merkletree.VerifyAndUpdate(st.Root, w, key, merkletree.ZeroHash, Present)
	if err != nil {
		return st, protocol.ErrAlreadyExists
	}
	return State{Root: root, Count: st.Count + 1}, nil
}

// RequireEligible checks that w proves key listed under st.Root.
// A witness for another key yields protocol.ErrCommitmentMismatch,
// anything else that does not verify yields protocol.ErrAuthorization.
func (g *Gate) RequireEligible(st State, key merkletree.Hash, w *merkletree.Witness) error {
	if w == nil || w.Key != key {
		return protocol.ErrCommitmentMismatch
	}
	if !merkletree.VerifyMembership(st.Root, w, Present) {
		return protocol.ErrAuthorization
	}
	return nil
}

// DepositMessage stores the flag bitset message under the depositor's
// key, and returns the resulting message state.
//
// The depositor must be listed (see RequireEligible), the bitset must
// pass validator.CheckFlags (protocol.ErrStructural otherwise), and
// messageW must prove that the depositor's leaf is still empty under
// ms.Root: each address deposits at most once.
func (g *Gate) DepositMessage(st State, ms MessageState, key merkletree.Hash,
	message uint64, eligibleW, messageW *merkletree.Witness) (MessageState, error) {
	if err := g.RequireEligible(st, key, eligibleW); err != nil {
		return ms, err
	}
	if err := validator.CheckFlags(message).Err(); err != nil {
		return ms, err
	}
	root, err := merkletree.VerifyAndUpdate(ms.Root, messageW, key,
		merkletree.ZeroHash, merkletree.Uint64Hash(message))
	if err != nil {
		return ms, protocol.ErrAlreadyExists
	}
	return MessageState{Root: root, Count: ms.Count + 1}, nil
}
