package protocol

import (
	"github.com/msgbox-sys/msgbox-go/crypto"
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/utils"
)

const (
	// AgentKeyIdentifier is the domain separation prefix of agent keys.
	AgentKeyIdentifier = 'A'
	// AddressKeyIdentifier is the domain separation prefix of
	// allow-list address keys.
	AddressKeyIdentifier = 'P'
)

// AgentDetails is the record kept for every agent.
// The zero record denotes an agent that does not exist.
type AgentDetails struct {
	LastMessageNumber MessageNumber
	SecurityCode      AgentCode
}

// Fields returns the ordered tuple of numeric fields of the record.
func (a AgentDetails) Fields() []uint64 {
	return []uint64{
		uint64(a.LastMessageNumber),
		uint64(a.SecurityCode[0]),
		uint64(a.SecurityCode[1]),
	}
}

// Serialize returns the canonical encoding of the record:
// the concatenation of its fields, 8 bytes each.
func (a AgentDetails) Serialize() []byte {
	var buf []byte
	for _, f := range a.Fields() {
		buf = append(buf, utils.ULongToBytes(f)...)
	}
	return buf
}

// Exists reports whether the record denotes an existing agent.
func (a AgentDetails) Exists() bool {
	return !a.SecurityCode.IsZero()
}

// Value returns the leaf value committing to the record.
// The zero record maps to the sentinel.
func (a AgentDetails) Value() merkletree.Hash {
	if a == (AgentDetails{}) {
		return merkletree.ZeroHash
	}
	return IdentityKey(a.Serialize())
}

// IdentityKey derives a map key from fields.
func IdentityKey(fields ...[]byte) merkletree.Hash {
	var h merkletree.Hash
	copy(h[:], crypto.Digest(fields...))
	return h
}

// AgentKey returns the key of agent id in the agent map.
func AgentKey(id AgentID) merkletree.Hash {
	return IdentityKey([]byte{AgentKeyIdentifier}, utils.ULongToBytes(uint64(id)))
}

// AddressKey returns the key of the address pk in the allow-list.
func AddressKey(pk sign.PublicKey) merkletree.Hash {
	return IdentityKey([]byte{AddressKeyIdentifier}, pk)
}
