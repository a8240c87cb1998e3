package messagebox

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/crypto"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/attest"
)

type rejectAll struct{}

func (rejectAll) Verify(protocol.AgentDetails, attest.Output, *attest.Proof) bool {
	return false
}

func TestPrivateProcessMessageDisabled(t *testing.T) {
	st, h := newTestBox(t)
	p := NewPrivate(rejectAll{})
	got, _, err := p.ProcessMessage(st, message(7, 1, "Hello World!", codeA1), h.record(7), nil)
	if err != protocol.ErrMalformedTransaction || got != st {
		t.Fatal("Expect ErrMalformedTransaction, got", err)
	}
}

func TestProcessMessagePrivately(t *testing.T) {
	engine := attest.StaticTestEngine(t)
	st, h := newTestBox(t)
	p := NewPrivate(engine)
	pk, _ := crypto.NewStaticTestSigningKey().Public()
	tx := TxInfo{BlockHeight: 1, Sender: pk, Nonce: 2}

	proof, err := engine.Prove(h.records[7], message(7, 1, "Hello World!", codeA1))
	if err != nil {
		t.Fatal(err)
	}
	next, d, info, err := p.ProcessMessagePrivately(st, proof, h.record(7), tx)
	if err != nil {
		t.Fatal(err)
	}
	if d.LastMessageNumber != 1 || d.SecurityCode != codeA1 {
		t.Fatal("Unexpected record", d)
	}
	if info == nil || info.BlockHeight != 1 || info.Nonce != 2 || string(info.Sender) != string(pk) {
		t.Fatal("Unexpected tx info", info)
	}
	h.set(7, d)
	if next.AgentsRoot != h.m.Root() {
		t.Fatal("Expect the committed root to follow the holder")
	}

	// the same proof is bound to the old record and cannot be replayed
	got, _, info, err := p.ProcessMessagePrivately(next, proof, h.record(7), tx)
	if err != protocol.ErrInvalidProof || got != next || info != nil {
		t.Fatal("Expect ErrInvalidProof for a replayed proof, got", err)
	}
}

func TestProcessMessagePrivatelyErrors(t *testing.T) {
	engine := attest.StaticTestEngine(t)
	st, h := newTestBox(t)
	proof, err := engine.Prove(h.records[7], message(7, 1, "Hello World!", codeA1))
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := NewPrivate(rejectAll{}).ProcessMessagePrivately(st, proof, h.record(7),
		TxInfo{}); err != protocol.ErrInvalidProof {
		t.Fatal("Expect ErrInvalidProof, got", err)
	}
	p := NewPrivate(engine)
	if _, _, _, err := p.ProcessMessagePrivately(st, nil, h.record(7), TxInfo{}); err != protocol.ErrInvalidProof {
		t.Fatal("Expect ErrInvalidProof for a nil proof, got", err)
	}
	unknown := *proof
	unknown.Output.AgentID = 8
	if _, _, _, err := p.ProcessMessagePrivately(st, &unknown, h.record(8), TxInfo{}); err != protocol.ErrAuthorization {
		t.Fatal("Expect ErrAuthorization for an unknown agent, got", err)
	}
}
