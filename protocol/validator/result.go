package validator

import (
	"github.com/msgbox-sys/msgbox-go/protocol"
)

// Rule names a single validity check.
type Rule int

const (
	RuleNone Rule = iota
	RuleFlagRange
	RuleFlagExclusive
	RuleFlagPair
	RuleFlagTail
	RuleAgentRange
	RuleXRange
	RuleYRange
	RuleChecksum
	RuleXYOrder
	RuleTextTermination
	RuleSecurityCode
	RuleSequence
)

var ruleNames = map[Rule]string{
	RuleNone:            "none",
	RuleFlagRange:       "flag bitset range",
	RuleFlagExclusive:   "flag 1 excludes flags 2-6",
	RuleFlagPair:        "flag 1 requires flag 3",
	RuleFlagTail:        "flag 4 excludes flags 5-6",
	RuleAgentRange:      "agent id range",
	RuleXRange:          "x range",
	RuleYRange:          "y range",
	RuleChecksum:        "checksum",
	RuleXYOrder:         "y greater than x",
	RuleTextTermination: "text length",
	RuleSecurityCode:    "security code",
	RuleSequence:        "message number",
}

func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return "unknown"
}

// Result is the outcome of a validity predicate. When Valid is false,
// Failed names the first failing rule.
type Result struct {
	Valid  bool
	Failed Rule
}

// Err maps a failing result to its error code, and a passing one to nil.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	switch r.Failed {
	case RuleSecurityCode:
		return protocol.ErrAuthorization
	case RuleSequence:
		return protocol.ErrReplay
	default:
		return protocol.ErrStructural
	}
}

type check struct {
	ok   bool
	rule Rule
}

// all evaluates every check and reports the first one failing.
func all(checks ...check) Result {
	for _, c := range checks {
		if !c.ok {
			return Result{Failed: c.rule}
		}
	}
	return Result{Valid: true}
}
