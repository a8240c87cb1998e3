package ledger

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/crypto"
	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/protocol"
)

// account signs transactions with increasing nonces.
type account struct {
	key   sign.PrivateKey
	pk    sign.PublicKey
	nonce uint64
}

func newAccounts(n int) []*account {
	var accounts []*account
	for _, sk := range crypto.NewStaticTestSigningKeys(n) {
		pk, _ := sk.Public()
		accounts = append(accounts, &account{key: sk, pk: pk})
	}
	return accounts
}

func (a *account) tx(t *testing.T, method string, payload interface{}) *Tx {
	a.nonce++
	tx, err := NewTx(a.key, a.nonce, method, payload)
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

// block submits txs and produces a block, checking the status codes.
func block(t *testing.T, l *Ledger, want []protocol.ErrorCode, txs ...*Tx) *Block {
	for _, tx := range txs {
		l.Submit(tx)
	}
	b, err := l.ProduceBlock()
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Statuses) != len(want) {
		t.Fatalf("Expect %d statuses, got %d", len(want), len(b.Statuses))
	}
	for i, s := range b.Statuses {
		if s.Code != want[i] {
			t.Errorf("tx %d (%s): got code %d (%v), want %d (%v)",
				i, s.Method, s.Code, s.Code, want[i], want[i])
		}
	}
	return b
}

func codes(cs ...protocol.ErrorCode) []protocol.ErrorCode {
	return cs
}

func textMessage(id protocol.AgentID, number protocol.MessageNumber, text, code string) protocol.Message {
	var c protocol.AgentCode
	copy(c[:], code)
	return protocol.Message{
		MessageNumber: number,
		Details: protocol.MessageDetails{
			AgentID:      id,
			Text:         protocol.PadMessageText([]byte(text)),
			SecurityCode: c,
		},
	}
}
