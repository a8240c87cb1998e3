package ledger

import (
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/allowlist"
	"github.com/msgbox-sys/msgbox-go/protocol/messagebox"
	"github.com/msgbox-sys/msgbox-go/protocol/validator"
)

// apply authenticates tx and dispatches it to its method. The returned
// note is only set by obtain.
func (l *Ledger) apply(tx *Tx) (string, error) {
	if len(tx.Sender) != sign.PublicKeySize || !tx.Verify() {
		return "", protocol.ErrAuthorization
	}
	if !l.nonces.Admit(protocol.AddressKey(tx.Sender), protocol.MessageNumber(tx.Nonce)) {
		return "", protocol.ErrReplay
	}

	switch tx.Method {
	case MethodAddAddress:
		return "", l.addAddress(tx)
	case MethodDepositMessage:
		return "", l.depositMessage(tx)
	case MethodObtain:
		return l.obtain(tx)
	case MethodPopulateAgent:
		return "", l.populateAgent(tx)
	case MethodProcessMessage:
		return "", l.processMessage(tx)
	case MethodProcessMessagePrivately:
		return "", l.processMessagePrivately(tx)
	}
	return "", protocol.ErrMalformedTransaction
}

func (l *Ledger) addAddress(tx *Tx) error {
	var p AddAddressPayload
	if err := tx.decode(&p); err != nil {
		return err
	}
	if len(p.Address) != sign.PublicKeySize {
		return protocol.ErrMalformedTransaction
	}
	key := protocol.AddressKey(p.Address)
	st, err := l.gate.AddAddress(l.snapshot.Allowlist, l.isOwner(tx.Sender), key, l.eligible.Witness(key))
	if err != nil {
		return err
	}
	l.eligible.Set(key, allowlist.Present)
	l.snapshot.Allowlist = st
	mustMatch(st.Root, l.eligible)
	return nil
}

func (l *Ledger) depositMessage(tx *Tx) error {
	var p DepositMessagePayload
	if err := tx.decode(&p); err != nil {
		return err
	}
	key := protocol.AddressKey(tx.Sender)
	ms, err := l.gate.DepositMessage(l.snapshot.Allowlist, l.snapshot.Messages, key, p.Message,
		l.eligible.Witness(key), l.messages.Witness(key))
	if err != nil {
		return err
	}
	l.messages.Set(key, merkletree.Uint64Hash(p.Message))
	l.snapshot.Messages = ms
	mustMatch(ms.Root, l.messages)
	return nil
}

func (l *Ledger) obtain(tx *Tx) (string, error) {
	var p ObtainPayload
	if err := tx.decode(&p); err != nil {
		return "", err
	}
	st, res := validator.Obtain(l.snapshot.Numeric, p.Message)
	l.snapshot.Numeric = st
	if res.Valid {
		return "valid", nil
	}
	return "invalid: " + res.Failed.String(), nil
}

func (l *Ledger) populateAgent(tx *Tx) error {
	var p PopulateAgentPayload
	if err := tx.decode(&p); err != nil {
		return err
	}
	details := protocol.AgentDetails{SecurityCode: p.SecurityCode}
	st, err := messagebox.PopulateAgent(l.snapshot.MessageBox, l.height, p.AgentID,
		l.record(p.AgentID), details)
	if err != nil {
		return err
	}
	l.setAgent(p.AgentID, details, st)
	return nil
}

func (l *Ledger) processMessage(tx *Tx) error {
	var p ProcessMessagePayload
	if err := tx.decode(&p); err != nil {
		return err
	}
	id := p.Message.Details.AgentID
	var (
		st      messagebox.State
		details protocol.AgentDetails
		err     error
	)
	if l.private != nil {
		st, details, err = l.private.ProcessMessage(l.snapshot.MessageBox, p.Message, l.record(id), nil)
	} else {
		st, details, err = messagebox.ProcessMessage(l.snapshot.MessageBox, p.Message, l.record(id), nil)
	}
	if err != nil {
		return err
	}
	l.setAgent(id, details, st)
	return nil
}

func (l *Ledger) processMessagePrivately(tx *Tx) error {
	if l.private == nil {
		return protocol.ErrMalformedTransaction
	}
	var p ProcessMessagePrivatelyPayload
	if err := tx.decode(&p); err != nil {
		return err
	}
	id := p.Proof.Output.AgentID
	st, details, info, err := l.private.ProcessMessagePrivately(l.snapshot.MessageBox, &p.Proof,
		l.record(id), messagebox.TxInfo{
			BlockHeight: l.height,
			Sender:      tx.Sender,
			Nonce:       tx.Nonce,
		})
	if err != nil {
		return err
	}
	l.setAgent(id, details, st)
	if info != nil {
		l.txInfo[id] = *info
	}
	return nil
}
