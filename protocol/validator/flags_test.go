package validator

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/protocol"
)

func TestGetFlags(t *testing.T) {
	tests := []struct {
		bitset uint64
		want   Flags
	}{
		{63, Flags{true, true, true, true, true, true}},
		{64, Flags{false, false, false, false, false, false}},
		{243, Flags{true, true, false, false, true, true}},
		{255, Flags{true, true, true, true, true, true}},
		{192, Flags{false, false, false, false, false, false}},
		{33, Flags{true, false, false, false, false, true}},
	}
	for _, tt := range tests {
		got, err := GetFlags(tt.bitset)
		if err != nil {
			t.Errorf("%d: unexpected error %v", tt.bitset, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%d: got %v, want %v", tt.bitset, got, tt.want)
		}
	}
}

func TestGetFlagsRange(t *testing.T) {
	for _, bitset := range []uint64{0, 1, 31, 32} {
		if _, err := GetFlags(bitset); err != protocol.ErrStructural {
			t.Errorf("%d: expect ErrStructural, got %v", bitset, err)
		}
	}
}

func TestCheckFlags(t *testing.T) {
	tests := []struct {
		name   string
		bitset uint64
		want   Result
	}{
		{"range", 32, Result{Failed: RuleFlagRange}},
		{"all set", 63, Result{Failed: RuleFlagExclusive}},
		{"flag 1 alone", 96, Result{Failed: RuleFlagPair}},
		{"flag 1 and 3", 40, Result{Failed: RuleFlagExclusive}},
		{"none set", 64, Result{Valid: true}},
		{"flag 4 alone", 68, Result{Valid: true}},
		{"flag 4 and 5", 70, Result{Failed: RuleFlagTail}},
		{"flag 4 and 6", 69, Result{Failed: RuleFlagTail}},
		{"flag 2 and 3", 88, Result{Valid: true}},
		{"flag 5 and 6", 67, Result{Valid: true}},
	}
	for _, tt := range tests {
		if got := CheckFlags(tt.bitset); got != tt.want {
			t.Errorf("%s (%d): got %+v, want %+v", tt.name, tt.bitset, got, tt.want)
		}
	}
}

func TestResultErr(t *testing.T) {
	tests := []struct {
		res  Result
		want error
	}{
		{Result{Valid: true}, nil},
		{Result{Failed: RuleFlagTail}, protocol.ErrStructural},
		{Result{Failed: RuleChecksum}, protocol.ErrStructural},
		{Result{Failed: RuleSecurityCode}, protocol.ErrAuthorization},
		{Result{Failed: RuleSequence}, protocol.ErrReplay},
	}
	for _, tt := range tests {
		if got := tt.res.Err(); got != tt.want {
			t.Errorf("%v: got %v, want %v", tt.res.Failed, got, tt.want)
		}
	}
}
