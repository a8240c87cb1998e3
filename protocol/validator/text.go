package validator

import (
	"github.com/msgbox-sys/msgbox-go/protocol"
)

// ValidateText checks msg against the stored record of its agent.
// The same checks are enforced by the message circuit of the attest
// package.
func ValidateText(msg protocol.Message, agent protocol.AgentDetails) Result {
	return all(
		check{msg.Details.Text.IsValid(), RuleTextTermination},
		check{msg.Details.SecurityCode == agent.SecurityCode, RuleSecurityCode},
		check{msg.MessageNumber > agent.LastMessageNumber, RuleSequence},
	)
}
