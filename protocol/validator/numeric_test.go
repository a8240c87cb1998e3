package validator

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/protocol"
)

func numeric(id protocol.MessageNumber, agent, x, y uint64) protocol.NumericMessage {
	return protocol.NumericMessage{
		MessageNumber: id,
		AgentID:       agent,
		X:             x,
		Y:             y,
		Checksum:      agent + x + y,
	}
}

func TestValidateNumeric(t *testing.T) {
	bad := numeric(10, 10, 5000, 15000)
	bad.Checksum = 20011

	tests := []struct {
		name     string
		previous protocol.MessageNumber
		msg      protocol.NumericMessage
		want     Result
	}{
		{"valid", 0, numeric(10, 10, 5000, 15000), Result{Valid: true}},
		{"bad checksum", 0, bad, Result{Failed: RuleChecksum}},
		{"agent range", 0, numeric(10, 3001, 5000, 15000), Result{Failed: RuleAgentRange}},
		{"x range", 0, numeric(10, 10, 15001, 19000), Result{Failed: RuleXRange}},
		{"y too small", 0, numeric(10, 10, 1000, 4999), Result{Failed: RuleYRange}},
		{"y too large", 0, numeric(10, 10, 1000, 20001), Result{Failed: RuleYRange}},
		{"y not above x", 0, numeric(10, 10, 9000, 9000), Result{Failed: RuleXYOrder}},
		{"agent zero bypass", 0, numeric(10, 0, 99999, 0), Result{Valid: true}},
		{"previous id bypass", 10, numeric(10, 10, 99999, 0), Result{Valid: true}},
		{"previous id above", 11, numeric(10, 10, 99999, 0), Result{Valid: true}},
		{"bounds inclusive", 0, numeric(10, 3000, 15000, 20000), Result{Valid: true}},
	}
	for _, tt := range tests {
		if got := ValidateNumeric(tt.previous, tt.msg); got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
	if got := ValidateNumeric(0, bad).Err(); got != protocol.ErrStructural {
		t.Error("Expect a bad checksum to be a structural error, got", got)
	}
}

func TestObtainHighWaterMark(t *testing.T) {
	var st NumericState
	for i := uint64(1); i <= 50; i++ {
		var res Result
		st, res = Obtain(st, numeric(protocol.MessageNumber(i), i, i, i))
		if res.Valid {
			t.Fatal("Expect message", i, "to be invalid")
		}
		if st.HighMessageID != 0 {
			t.Fatal("Expect the high-water mark not to move, got", st.HighMessageID)
		}
		if st.PreviousMessageID != protocol.MessageNumber(i) {
			t.Fatal("Expect the previous id to track every message")
		}
	}

	st, res := Obtain(st, numeric(1000, 10, 5000, 15000))
	if !res.Valid {
		t.Fatal("Expect message 1000 to be valid, failed", res.Failed)
	}
	if st.HighMessageID != 1000 || st.PreviousMessageID != 1000 {
		t.Fatal("Unexpected state", st)
	}

	// a valid message below the mark leaves it in place
	st, res = Obtain(st, numeric(999, 10, 5000, 15000))
	if !res.Valid || st.HighMessageID != 1000 || st.PreviousMessageID != 999 {
		t.Fatal("Unexpected state", st, res)
	}
}

func TestObtainInvalidKeepsMark(t *testing.T) {
	st := NumericState{HighMessageID: 5, PreviousMessageID: 5}
	bad := numeric(6, 10, 5000, 15000)
	bad.Checksum++
	next, res := Obtain(st, bad)
	if res.Valid {
		t.Fatal("Expect an invalid message")
	}
	if next.HighMessageID != 5 || next.PreviousMessageID != 6 {
		t.Fatal("Unexpected state", next)
	}
}
