// Package attest produces and checks detached proofs that a message
// is valid for an agent record, without revealing the message body
// or the security code it carries.
//
// The statement proven is the one of validator.ValidateText: the body
// terminates after 12 characters, the security code equals the stored
// one, and the message number exceeds the stored last number.
// The agent record is a public input; the message is private.
// The public output is the pair (message number, agent id).
package attest

import (
	"runtime"
	"sync"

	"github.com/msgbox-sys/msgbox-go/protocol"
)

// Output is the public output of a message proof.
type Output struct {
	MessageNumber protocol.MessageNumber
	AgentID       protocol.AgentID
}

// Proof is a detached validity proof together with the output it
// commits to.
type Proof struct {
	Output Output
	Data   []byte
}

// A Prover produces a Proof that msg is valid for agent.
// It fails when the statement is false.
type Prover interface {
	Prove(agent protocol.AgentDetails, msg protocol.Message) (*Proof, error)
}

// A Verifier checks a Proof against the agent record it was
// produced for and its claimed output.
type Verifier interface {
	Verify(agent protocol.AgentDetails, out Output, proof *Proof) bool
}

// Job is one input of ProveAll.
type Job struct {
	Agent   protocol.AgentDetails
	Message protocol.Message
}

// ProveAll proves every job concurrently with p, using at most
// runtime.NumCPU() goroutines. The i-th proof or error answers the
// i-th job.
func ProveAll(p Prover, jobs []Job) ([]*Proof, []error) {
	proofs := make([]*Proof, len(jobs))
	errs := make([]error, len(jobs))

	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			proofs[i], errs[i] = p.Prove(jobs[i].Agent, jobs[i].Message)
		}(i)
	}
	wg.Wait()
	return proofs, errs
}
