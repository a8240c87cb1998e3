package attest

import (
	"github.com/consensys/gnark/frontend"

	"github.com/msgbox-sys/msgbox-go/protocol"
)

// messageCircuit proves that a private message is valid for a
// public agent record. The public output (MessageNumber, AgentID)
// is exposed as public inputs.
type messageCircuit struct {
	LastMessageNumber frontend.Variable    `gnark:",public"`
	AgentCode         [2]frontend.Variable `gnark:",public"`
	MessageNumber     frontend.Variable    `gnark:",public"`
	AgentID           frontend.Variable    `gnark:",public"`

	Text         [protocol.TextCapacity]frontend.Variable
	SecurityCode [2]frontend.Variable
}

func (c *messageCircuit) Define(api frontend.API) error {
	// every input is range checked, which also binds the ones
	// not used below to the proof
	api.ToBinary(c.LastMessageNumber, 64)
	api.ToBinary(c.MessageNumber, 64)
	api.ToBinary(c.AgentID, 64)
	for i := range c.AgentCode {
		api.ToBinary(c.AgentCode[i], 8)
		api.ToBinary(c.SecurityCode[i], 8)
	}
	for i := range c.Text {
		api.ToBinary(c.Text[i], 8)
	}

	// the body is exactly protocol.TextLength characters
	api.AssertIsDifferent(c.Text[protocol.TextLength-1], 0)
	api.AssertIsEqual(c.Text[protocol.TextLength], 0)

	api.AssertIsEqual(c.SecurityCode[0], c.AgentCode[0])
	api.AssertIsEqual(c.SecurityCode[1], c.AgentCode[1])

	// LastMessageNumber < MessageNumber
	api.AssertIsLessOrEqual(api.Add(c.LastMessageNumber, 1), c.MessageNumber)
	return nil
}

func publicAssignment(agent protocol.AgentDetails, out Output) *messageCircuit {
	return &messageCircuit{
		LastMessageNumber: uint64(agent.LastMessageNumber),
		AgentCode:         [2]frontend.Variable{uint64(agent.SecurityCode[0]), uint64(agent.SecurityCode[1])},
		MessageNumber:     uint64(out.MessageNumber),
		AgentID:           uint64(out.AgentID),
	}
}

func fullAssignment(agent protocol.AgentDetails, msg protocol.Message) *messageCircuit {
	c := publicAssignment(agent, Output{
		MessageNumber: msg.MessageNumber,
		AgentID:       msg.Details.AgentID,
	})
	for i := range c.Text {
		c.Text[i] = uint64(msg.Details.Text[i])
	}
	c.SecurityCode = [2]frontend.Variable{
		uint64(msg.Details.SecurityCode[0]),
		uint64(msg.Details.SecurityCode[1]),
	}
	return c
}
