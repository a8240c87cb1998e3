// This module implements the message box: an authenticated map from
// agent ids to agent records. A message from an agent is accepted when
// it is valid for the agent's stored record, and accepting it advances
// the record's last message number.
//
// The box itself only holds the commitment to the agent map. Every
// transition is handed the agent's current record together with a
// witness proving it under the commitment, and returns the next
// commitment. Keeping the map up to date is the caller's business.

package messagebox

import (
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/replay"
	"github.com/msgbox-sys/msgbox-go/protocol/validator"
)

// GenesisHeight is the only block height at which agents may be
// populated.
const GenesisHeight = 0

// State is the committed state of the message box.
type State struct {
	AgentsRoot merkletree.Hash
}

// NewState returns the state of a message box without agents.
func NewState() State {
	return State{AgentsRoot: merkletree.EmptyRoot()}
}

// Record is an agent record claimed by the caller, along with the
// witness proving it under State.AgentsRoot.
type Record struct {
	Details protocol.AgentDetails
	Witness *merkletree.Witness
}

// An UpdateHook is run after the next commitment of a successful
// transition is computed. A non-nil error aborts the transition.
type UpdateHook func(id protocol.AgentID, details protocol.AgentDetails) error

// EnsureAgent authenticates rec as the record of agent id and returns
// it. A witness that does not prove rec under st yields
// protocol.ErrCommitmentMismatch; a record denoting no agent yields
// protocol.ErrAuthorization.
func EnsureAgent(st State, id protocol.AgentID, rec Record) (protocol.AgentDetails, error) {
	if rec.Witness == nil || rec.Witness.Key != protocol.AgentKey(id) {
		return protocol.AgentDetails{}, protocol.ErrCommitmentMismatch
	}
	if !merkletree.VerifyMembership(st.AgentsRoot, rec.Witness, rec.Details.Value()) {
		return protocol.AgentDetails{}, protocol.ErrCommitmentMismatch
	}
	if !rec.Details.Exists() {
		return protocol.AgentDetails{}, protocol.ErrAuthorization
	}
	return rec.Details, nil
}

// PopulateAgent creates agent id with the record details. rec must
// prove that the agent does not exist yet: an existing agent is never
// overwritten (protocol.ErrAlreadyExists).
// It is only allowed at GenesisHeight (protocol.ErrAuthorization
// otherwise), and details must carry a non-zero security code
// (protocol.ErrStructural otherwise).
func PopulateAgent(st State, height uint64, id protocol.AgentID, rec Record,
	details protocol.AgentDetails) (State, error) {
	if height != GenesisHeight {
		return st, protocol.ErrAuthorization
	}
	if !details.Exists() {
		return st, protocol.ErrStructural
	}
	if rec.Details != (protocol.AgentDetails{}) {
		return st, protocol.ErrAlreadyExists
	}
	root, err := merkletree.VerifyAndUpdate(st.AgentsRoot, rec.Witness,
		protocol.AgentKey(id), merkletree.ZeroHash, details.Value())
	if err != nil {
		return st, protocol.ErrAlreadyExists
	}
	return State{AgentsRoot: root}, nil
}

// ProcessMessage accepts msg from its agent, whose current record is
// rec, and returns the next state and the agent's next record.
// The message must pass validator.ValidateText against the record.
// hook, if not nil, runs once the update is computed.
// On any error st is returned unchanged.
func ProcessMessage(st State, msg protocol.Message, rec Record,
	hook UpdateHook) (State, protocol.AgentDetails, error) {
	agent, err := EnsureAgent(st, msg.Details.AgentID, rec)
	if err != nil {
		return st, protocol.AgentDetails{}, err
	}
	if err := validator.ValidateText(msg, agent).Err(); err != nil {
		return st, protocol.AgentDetails{}, err
	}
	return advance(st, msg.Details.AgentID, rec, msg.MessageNumber, hook)
}

// advance moves the last message number of the agent to number.
func advance(st State, id protocol.AgentID, rec Record, number protocol.MessageNumber,
	hook UpdateHook) (State, protocol.AgentDetails, error) {
	g, ok := replay.Guard{Last: rec.Details.LastMessageNumber}.Admit(number)
	if !ok {
		return st, protocol.AgentDetails{}, protocol.ErrReplay
	}
	next := protocol.AgentDetails{
		LastMessageNumber: g.Last,
		SecurityCode:      rec.Details.SecurityCode,
	}
	return updateState(st, id, rec, next, hook)
}

func updateState(st State, id protocol.AgentID, rec Record, next protocol.AgentDetails,
	hook UpdateHook) (State, protocol.AgentDetails, error) {
	root, err := merkletree.VerifyAndUpdate(st.AgentsRoot, rec.Witness,
		protocol.AgentKey(id), rec.Details.Value(), next.Value())
	if err != nil {
		return st, protocol.AgentDetails{}, protocol.ErrCommitmentMismatch
	}
	if hook != nil {
		if err := hook(id, next); err != nil {
			return st, protocol.AgentDetails{}, err
		}
	}
	return State{AgentsRoot: root}, next, nil
}
