package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/msgbox-sys/msgbox-go/crypto"
	"github.com/msgbox-sys/msgbox-go/ledger"
)

func TestReadTxs(t *testing.T) {
	key := crypto.NewStaticTestSigningKey()
	var in bytes.Buffer
	for nonce := uint64(1); nonce <= 2; nonce++ {
		tx, err := ledger.NewTx(key, nonce, ledger.MethodDepositMessage,
			&ledger.DepositMessagePayload{Message: 34})
		if err != nil {
			t.Fatal(err)
		}
		buf, err := json.Marshal(tx)
		if err != nil {
			t.Fatal(err)
		}
		in.Write(buf)
		in.WriteString("\n\n")
	}

	txs, err := readTxs(&in)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 {
		t.Fatalf("Expect 2 transactions, got %d", len(txs))
	}
	for i, tx := range txs {
		if tx.Nonce != uint64(i+1) || !tx.Verify() {
			t.Error("Transaction", i, "did not survive decoding")
		}
	}
}

func TestReadTxsMalformed(t *testing.T) {
	_, err := readTxs(strings.NewReader("{\"nonce\":1}\nnot json\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatal("Expect an error naming line 2, got", err)
	}
}

func TestCheckFlags(t *testing.T) {
	for _, tc := range []struct {
		bitset string
		want   string
		ok     bool
	}{
		{"65", "flag 6: true\nvalid", true},
		{"0x48", "flag 3: true", true},
		{"32", "invalid: flag bitset range", false},
		{"33", "invalid: flag 1 excludes flags 2-6", false},
		{"71", "invalid: flag 4 excludes flags 5-6", false},
	} {
		var out bytes.Buffer
		flagsCmd.SetOut(&out)
		err := checkFlags(flagsCmd, []string{tc.bitset})
		if (err == nil) != tc.ok {
			t.Errorf("bitset %s: unexpected error %v", tc.bitset, err)
		}
		if !strings.Contains(out.String(), tc.want) {
			t.Errorf("bitset %s: output %q lacks %q", tc.bitset, out.String(), tc.want)
		}
	}
}
