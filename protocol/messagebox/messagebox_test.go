package messagebox

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
)

// holder mirrors the agent map off-chain, the way the ledger does.
type holder struct {
	m       *merkletree.Map
	records map[protocol.AgentID]protocol.AgentDetails
}

func newHolder() *holder {
	return &holder{
		m:       merkletree.NewMap(),
		records: make(map[protocol.AgentID]protocol.AgentDetails),
	}
}

func (h *holder) record(id protocol.AgentID) Record {
	return Record{Details: h.records[id], Witness: h.m.Witness(protocol.AgentKey(id))}
}

func (h *holder) set(id protocol.AgentID, d protocol.AgentDetails) {
	h.records[id] = d
	h.m.Set(protocol.AgentKey(id), d.Value())
}

var codeA1 = protocol.AgentCode{'A', '1'}

func newTestBox(t *testing.T) (State, *holder) {
	h := newHolder()
	st := NewState()
	for id, code := range map[protocol.AgentID]protocol.AgentCode{
		0: {'A', '0'},
		7: codeA1,
	} {
		d := protocol.AgentDetails{SecurityCode: code}
		next, err := PopulateAgent(st, GenesisHeight, id, h.record(id), d)
		if err != nil {
			t.Fatal(err)
		}
		h.set(id, d)
		if next.AgentsRoot != h.m.Root() {
			t.Fatal("Expect the committed root to follow the holder")
		}
		st = next
	}
	return st, h
}

func message(id protocol.AgentID, number protocol.MessageNumber, text string, code protocol.AgentCode) protocol.Message {
	return protocol.Message{
		MessageNumber: number,
		Details: protocol.MessageDetails{
			AgentID:      id,
			Text:         protocol.PadMessageText([]byte(text)),
			SecurityCode: code,
		},
	}
}

func TestPopulateAgentGenesisOnly(t *testing.T) {
	h := newHolder()
	st := NewState()
	d := protocol.AgentDetails{SecurityCode: codeA1}
	if got, err := PopulateAgent(st, 1, 7, h.record(7), d); err != protocol.ErrAuthorization || got != st {
		t.Fatal("Expect ErrAuthorization after genesis, got", err)
	}
	if _, err := PopulateAgent(st, GenesisHeight, 7, h.record(7),
		protocol.AgentDetails{}); err != protocol.ErrStructural {
		t.Fatal("Expect ErrStructural for a zero code, got", err)
	}
	if _, err := PopulateAgent(st, GenesisHeight, 7, h.record(8), d); err != protocol.ErrCommitmentMismatch {
		t.Fatal("Expect ErrCommitmentMismatch for another agent's witness, got", err)
	}
}

func TestPopulateAgentRefusesExisting(t *testing.T) {
	st, h := newTestBox(t)
	d := protocol.AgentDetails{SecurityCode: protocol.AgentCode{'Z', 'Z'}}
	if got, err := PopulateAgent(st, GenesisHeight, 7, h.record(7), d); err != protocol.ErrAlreadyExists || got != st {
		t.Fatal("Expect ErrAlreadyExists for an existing agent, got", err)
	}
	// a zero record with a witness of the existing leaf
	forged := Record{Witness: h.record(7).Witness}
	if got, err := PopulateAgent(st, GenesisHeight, 7, forged, d); err != protocol.ErrAlreadyExists || got != st {
		t.Fatal("Expect ErrAlreadyExists for a forged zero record, got", err)
	}
}

func TestEnsureAgent(t *testing.T) {
	st, h := newTestBox(t)
	got, err := EnsureAgent(st, 7, h.record(7))
	if err != nil {
		t.Fatal(err)
	}
	if got.SecurityCode != codeA1 {
		t.Fatal("Unexpected record", got)
	}
	if _, err := EnsureAgent(st, 8, h.record(8)); err != protocol.ErrAuthorization {
		t.Fatal("Expect ErrAuthorization for an unknown agent, got", err)
	}
	forged := h.record(7)
	forged.Details.LastMessageNumber = 100
	if _, err := EnsureAgent(st, 7, forged); err != protocol.ErrCommitmentMismatch {
		t.Fatal("Expect ErrCommitmentMismatch for a forged record, got", err)
	}
	if _, err := EnsureAgent(st, 7, Record{Details: h.records[7]}); err != protocol.ErrCommitmentMismatch {
		t.Fatal("Expect ErrCommitmentMismatch without a witness, got", err)
	}
}

func TestProcessMessageSequence(t *testing.T) {
	st, h := newTestBox(t)
	for _, n := range []protocol.MessageNumber{1, 2, 5} {
		next, d, err := ProcessMessage(st, message(7, n, "Hello World!", codeA1), h.record(7), nil)
		if err != nil {
			t.Fatal("message", n, err)
		}
		if d.LastMessageNumber != n || d.SecurityCode != codeA1 {
			t.Fatal("Unexpected record", d)
		}
		h.set(7, d)
		if next.AgentsRoot != h.m.Root() {
			t.Fatal("Expect the committed root to follow the holder")
		}
		st = next
	}

	for _, n := range []protocol.MessageNumber{5, 4} {
		got, _, err := ProcessMessage(st, message(7, n, "Hello World!", codeA1), h.record(7), nil)
		if err != protocol.ErrReplay {
			t.Fatal("Expect ErrReplay for", n, "got", err)
		}
		if got != st {
			t.Fatal("Expect the state to be unchanged")
		}
	}
}

func TestProcessMessageErrors(t *testing.T) {
	st, h := newTestBox(t)
	tests := []struct {
		name string
		msg  protocol.Message
		want error
	}{
		{"unknown agent", message(8, 1, "Hello World!", codeA1), protocol.ErrAuthorization},
		{"bad code", message(7, 1, "Hello World!", protocol.AgentCode{'B', '2'}), protocol.ErrAuthorization},
		{"short text", message(7, 1, "Hello World", codeA1), protocol.ErrStructural},
		{"long text", message(7, 1, "Hello World!!", codeA1), protocol.ErrStructural},
		{"zero number", message(7, 0, "Hello World!", codeA1), protocol.ErrReplay},
	}
	for _, tt := range tests {
		got, _, err := ProcessMessage(st, tt.msg, h.record(tt.msg.Details.AgentID), nil)
		if err != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
		if got != st {
			t.Errorf("%s: expect the state to be unchanged", tt.name)
		}
	}
}

func TestProcessMessageStaleWitness(t *testing.T) {
	st, h := newTestBox(t)
	stale := h.record(7)
	next, d, err := ProcessMessage(st, message(0, 1, "Hello World!", protocol.AgentCode{'A', '0'}),
		h.record(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	h.set(0, d)
	if _, _, err := ProcessMessage(next, message(7, 1, "Hello World!", codeA1), stale, nil); err != protocol.ErrCommitmentMismatch {
		t.Fatal("Expect ErrCommitmentMismatch, got", err)
	}
}

func TestProcessMessageHook(t *testing.T) {
	st, h := newTestBox(t)
	var calls int
	hook := func(id protocol.AgentID, d protocol.AgentDetails) error {
		calls++
		if id != 7 || d.LastMessageNumber != 3 {
			t.Error("Unexpected hook arguments", id, d)
		}
		return nil
	}
	if _, _, err := ProcessMessage(st, message(7, 3, "Hello World!", codeA1), h.record(7), hook); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatal("Expect the hook to run once, ran", calls)
	}

	failing := func(protocol.AgentID, protocol.AgentDetails) error { return protocol.ErrInternal }
	got, _, err := ProcessMessage(st, message(7, 3, "Hello World!", codeA1), h.record(7), failing)
	if err != protocol.ErrInternal || got != st {
		t.Fatal("Expect a failing hook to abort the transition, got", err)
	}
}
