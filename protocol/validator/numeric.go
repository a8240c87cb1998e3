package validator

import (
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/replay"
)

const (
	MaxAgentID = 3000
	MaxX       = 15000
	MinY       = 5000
	MaxY       = 20000
)

// NumericState is the committed state of the numeric validator.
type NumericState struct {
	// HighMessageID is the highest id of an accepted message.
	HighMessageID protocol.MessageNumber
	// PreviousMessageID is the id of the last submitted message,
	// valid or not.
	PreviousMessageID protocol.MessageNumber
}

// ValidateNumeric checks msg given the id of the previously submitted
// message. Agent 0 and a msg whose id does not exceed previousID are
// accepted without looking at the other fields.
func ValidateNumeric(previousID protocol.MessageNumber, msg protocol.NumericMessage) Result {
	fields := all(
		check{msg.AgentID <= MaxAgentID, RuleAgentRange},
		check{msg.X <= MaxX, RuleXRange},
		check{msg.Y >= MinY && msg.Y <= MaxY, RuleYRange},
		check{msg.Checksum == msg.AgentID+msg.X+msg.Y, RuleChecksum},
		check{msg.Y > msg.X, RuleXYOrder},
	)
	bypass := msg.AgentID == 0 || previousID >= msg.MessageNumber
	return protocol.Select(bypass, Result{Valid: true}, fields)
}

// Obtain runs ValidateNumeric on msg and returns the next state.
// The high-water mark moves to the id of a valid msg that exceeds it.
// PreviousMessageID always moves to the id of msg.
// Obtain itself never fails; the result tells whether msg was valid.
func Obtain(st NumericState, msg protocol.NumericMessage) (NumericState, Result) {
	res := ValidateNumeric(st.PreviousMessageID, msg)
	admitted, advance := replay.Guard{Last: st.HighMessageID}.Admit(msg.MessageNumber)
	return NumericState{
		HighMessageID:     protocol.Select(res.Valid && advance, admitted.Last, st.HighMessageID),
		PreviousMessageID: msg.MessageNumber,
	}, res
}
