package validator

import (
	"github.com/msgbox-sys/msgbox-go/protocol"
)

const (
	// FlagCount is the number of flags carried by a bitset.
	FlagCount = 6
	// MinFlagBitset is the largest rejected bitset value.
	MinFlagBitset = 32
)

// Flags holds the decoded flags; Flags[0] is flag 1.
type Flags [FlagCount]bool

// GetFlags decodes bitset. It fails with ErrStructural if
// bitset is not greater than MinFlagBitset.
func GetFlags(bitset uint64) (Flags, error) {
	var flags Flags
	if bitset <= MinFlagBitset {
		return flags, protocol.ErrStructural
	}
	for i := range flags {
		mask := uint64(1) << uint(FlagCount-1-i)
		flags[i] = bitset&mask == mask
	}
	return flags, nil
}

// CheckStructure evaluates the structure rules over flags.
func CheckStructure(flags Flags) Result {
	f1, f2, f3, f4, f5, f6 := flags[0], flags[1], flags[2], flags[3], flags[4], flags[5]
	return all(
		check{protocol.Select(f1, !f2 && !f3 && !f4 && !f5 && !f6, true), RuleFlagExclusive},
		check{protocol.Select(f1, f3, true), RuleFlagPair},
		check{protocol.Select(f4, !f5 && !f6, true), RuleFlagTail},
	)
}

// CheckFlags decodes bitset and evaluates the structure rules.
func CheckFlags(bitset uint64) Result {
	flags, err := GetFlags(bitset)
	if err != nil {
		return Result{Failed: RuleFlagRange}
	}
	return CheckStructure(flags)
}
