package attest

import (
	"bytes"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/pkg/errors"

	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/validator"
)

// Groth16 proves and verifies message proofs with the Groth16 proving
// system over BN254. It implements both Prover and Verifier and is
// safe for concurrent use.
type Groth16 struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

func compile() (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &messageCircuit{})
	if err != nil {
		return nil, errors.Wrap(err, "attest: cannot compile the message circuit")
	}
	return ccs, nil
}

// NewGroth16 compiles the message circuit and runs a fresh setup.
// Proofs only verify against the keys of the same setup; use Save and
// LoadGroth16 to share them between processes.
func NewGroth16() (*Groth16, error) {
	ccs, err := compile()
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, errors.Wrap(err, "attest: setup failed")
	}
	return &Groth16{ccs: ccs, pk: pk, vk: vk}, nil
}

// LoadGroth16 compiles the message circuit and reads the keys
// written by Save.
func LoadGroth16(pkr, vkr io.Reader) (*Groth16, error) {
	ccs, err := compile()
	if err != nil {
		return nil, err
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(pkr); err != nil {
		return nil, errors.Wrap(err, "attest: cannot read the proving key")
	}
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(vkr); err != nil {
		return nil, errors.Wrap(err, "attest: cannot read the verifying key")
	}
	return &Groth16{ccs: ccs, pk: pk, vk: vk}, nil
}

// Save writes the proving key to pkw and the verifying key to vkw.
func (g *Groth16) Save(pkw, vkw io.Writer) error {
	if _, err := g.pk.WriteTo(pkw); err != nil {
		return errors.Wrap(err, "attest: cannot write the proving key")
	}
	if _, err := g.vk.WriteTo(vkw); err != nil {
		return errors.Wrap(err, "attest: cannot write the verifying key")
	}
	return nil
}

// Prove returns a proof that msg is valid for agent. An invalid msg
// is rejected with the error of validator.ValidateText before any
// proving work is done.
func (g *Groth16) Prove(agent protocol.AgentDetails, msg protocol.Message) (*Proof, error) {
	if err := validator.ValidateText(msg, agent).Err(); err != nil {
		return nil, err
	}
	return g.prove(agent, msg)
}

// prove runs the prover without the native checks; the circuit alone
// decides whether a proof can be produced.
func (g *Groth16) prove(agent protocol.AgentDetails, msg protocol.Message) (*Proof, error) {
	w, err := frontend.NewWitness(fullAssignment(agent, msg), ecc.BN254.ScalarField())
	if err != nil {
		return nil, errors.Wrap(err, "attest: cannot build the witness")
	}
	p, err := groth16.Prove(g.ccs, g.pk, w)
	if err != nil {
		return nil, errors.Wrap(err, "attest: proving failed")
	}
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "attest: cannot encode the proof")
	}
	return &Proof{
		Output: Output{
			MessageNumber: msg.MessageNumber,
			AgentID:       msg.Details.AgentID,
		},
		Data: buf.Bytes(),
	}, nil
}

// Verify reports whether proof establishes that a message with output
// out is valid for agent.
func (g *Groth16) Verify(agent protocol.AgentDetails, out Output, proof *Proof) bool {
	if proof == nil || proof.Output != out {
		return false
	}
	p := groth16.NewProof(ecc.BN254)
	if _, err := p.ReadFrom(bytes.NewReader(proof.Data)); err != nil {
		return false
	}
	pub, err := frontend.NewWitness(publicAssignment(agent, out), ecc.BN254.ScalarField(),
		frontend.PublicOnly())
	if err != nil {
		return false
	}
	return groth16.Verify(p, g.vk, pub) == nil
}
