package messagebox

import (
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/attest"
)

// TxInfo describes the transaction that last updated an agent.
type TxInfo struct {
	BlockHeight uint64
	Sender      sign.PublicKey
	Nonce       uint64
}

// Private is the message box variant in which messages are never
// submitted in the clear: the sender submits a detached proof that
// its message is valid for the agent's record, and the box only
// learns the proof's public output.
type Private struct {
	Verifier attest.Verifier
}

// NewPrivate constructs a Private box checking proofs with v.
func NewPrivate(v attest.Verifier) *Private {
	return &Private{Verifier: v}
}

// ProcessMessage is disabled in the private variant and always fails
// with protocol.ErrMalformedTransaction.
func (p *Private) ProcessMessage(st State, _ protocol.Message, _ Record,
	_ UpdateHook) (State, protocol.AgentDetails, error) {
	return st, protocol.AgentDetails{}, protocol.ErrMalformedTransaction
}

// ProcessMessagePrivately accepts the message proven by proof for the
// agent named in its output, whose current record is rec.
//
// The proof is verified against the authenticated record; a proof that
// does not verify yields protocol.ErrInvalidProof. On success the
// agent's last message number moves to the proven one, and the
// returned TxInfo records tx as the transaction that updated the agent.
// On any error st is returned unchanged.
func (p *Private) ProcessMessagePrivately(st State, proof *attest.Proof, rec Record,
	tx TxInfo) (State, protocol.AgentDetails, *TxInfo, error) {
	if proof == nil {
		return st, protocol.AgentDetails{}, nil, protocol.ErrInvalidProof
	}
	agent, err := EnsureAgent(st, proof.Output.AgentID, rec)
	if err != nil {
		return st, protocol.AgentDetails{}, nil, err
	}
	if !p.Verifier.Verify(agent, proof.Output, proof) {
		return st, protocol.AgentDetails{}, nil, protocol.ErrInvalidProof
	}

	var info *TxInfo
	record := func(protocol.AgentID, protocol.AgentDetails) error {
		info = &TxInfo{
			BlockHeight: tx.BlockHeight,
			Sender:      tx.Sender,
			Nonce:       tx.Nonce,
		}
		return nil
	}
	next, details, err := advance(st, proof.Output.AgentID, rec, proof.Output.MessageNumber, record)
	if err != nil {
		return st, protocol.AgentDetails{}, nil, err
	}
	return next, details, info, nil
}
