package ledger

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/msgbox-sys/msgbox-go/crypto"
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/attest"
	"github.com/msgbox-sys/msgbox-go/utils"
)

// The methods a transaction may call.
const (
	MethodAddAddress              = "allowlist.addAddress"
	MethodDepositMessage          = "allowlist.depositMessage"
	MethodObtain                  = "validator.obtain"
	MethodPopulateAgent           = "messagebox.populateAgentWhitelist"
	MethodProcessMessage          = "messagebox.processMessage"
	MethodProcessMessagePrivately = "messagebox.processMessagePrivately"
)

// AddAddressPayload lists Address in the allow-list.
type AddAddressPayload struct {
	Address sign.PublicKey `json:"address"`
}

// DepositMessagePayload deposits a flag bitset for the sender.
type DepositMessagePayload struct {
	Message uint64 `json:"message"`
}

// ObtainPayload submits a numeric message.
type ObtainPayload struct {
	Message protocol.NumericMessage `json:"message"`
}

// PopulateAgentPayload creates an agent at genesis.
type PopulateAgentPayload struct {
	AgentID      protocol.AgentID   `json:"agent_id"`
	SecurityCode protocol.AgentCode `json:"security_code"`
}

// ProcessMessagePayload submits a text message in the clear.
type ProcessMessagePayload struct {
	Message protocol.Message `json:"message"`
}

// ProcessMessagePrivatelyPayload submits the proof of a text message.
type ProcessMessagePrivatelyPayload struct {
	Proof attest.Proof `json:"proof"`
}

// A Tx is a signed call of a ledger method.
type Tx struct {
	Sender    sign.PublicKey  `json:"sender"`
	Nonce     uint64          `json:"nonce"`
	Method    string          `json:"method"`
	Payload   json.RawMessage `json:"payload"`
	Signature []byte          `json:"signature"`
}

// NewTx encodes payload and signs the resulting transaction with key.
func NewTx(key sign.PrivateKey, nonce uint64, method string, payload interface{}) (*Tx, error) {
	pk, ok := key.Public()
	if !ok {
		return nil, sign.ErrGetPubKey
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "ledger: cannot encode the payload of %s", method)
	}
	tx := &Tx{
		Sender:  pk,
		Nonce:   nonce,
		Method:  method,
		Payload: buf,
	}
	tx.Signature = key.Sign(tx.signingBytes())
	return tx, nil
}

func (tx *Tx) signingBytes() []byte {
	return crypto.Digest(
		utils.ULongToBytes(uint64(len(tx.Method))),
		[]byte(tx.Method),
		utils.ULongToBytes(tx.Nonce),
		tx.Sender,
		tx.Payload,
	)
}

// Verify reports whether the transaction is signed by its sender.
func (tx *Tx) Verify() bool {
	return tx.Sender.Verify(tx.signingBytes(), tx.Signature)
}

// Hash identifies the transaction.
func (tx *Tx) Hash() merkletree.Hash {
	var h merkletree.Hash
	copy(h[:], crypto.Digest(tx.signingBytes(), tx.Signature))
	return h
}

func (tx *Tx) decode(payload interface{}) error {
	if err := json.Unmarshal(tx.Payload, payload); err != nil {
		return protocol.ErrMalformedTransaction
	}
	return nil
}
