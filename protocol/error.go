// Defines constants representing the types
// of errors that a state transition may return.

package protocol

// An ErrorCode is a message indicating the outcome of a
// state transition. It implements the error interface.
type ErrorCode int

const (
	// ReqSuccess indicates that the transition was applied.
	ReqSuccess ErrorCode = iota + 10
	// ErrAuthorization indicates that the caller may not perform the
	// transition: not the owner, not eligible, unknown agent, wrong
	// security code, or an operation outside the genesis block.
	ErrAuthorization
	// ErrCapacity indicates that a bounded map is full.
	ErrCapacity
	// ErrStructural indicates a malformed message or flag bitset.
	ErrStructural
	// ErrReplay indicates a message number or a nonce that does not
	// advance past the last accepted one.
	ErrReplay
	// ErrCommitmentMismatch indicates a stale witness, or a leaf that
	// does not hold the expected value.
	ErrCommitmentMismatch
	// ErrInvalidProof indicates a detached proof that does not verify.
	ErrInvalidProof
	// ErrMalformedTransaction indicates an undecodable transaction, or
	// an operation that is disabled in the current configuration.
	ErrMalformedTransaction
	// ErrInternal indicates an unexpected failure of the ledger.
	ErrInternal
)

// ErrAlreadyExists is returned when inserting into an occupied leaf.
// It is observably the same failure as a stale witness.
const ErrAlreadyExists = ErrCommitmentMismatch

var (
	// Errors contains codes indicating the transition was rejected.
	Errors = map[ErrorCode]bool{
		ErrAuthorization:        true,
		ErrCapacity:             true,
		ErrStructural:           true,
		ErrReplay:               true,
		ErrCommitmentMismatch:   true,
		ErrInvalidProof:         true,
		ErrMalformedTransaction: true,
		ErrInternal:             true,
	}

	errorMessages = map[ErrorCode]string{
		ReqSuccess:              "[msgbox] Successful request",
		ErrAuthorization:        "[msgbox] Not authorized",
		ErrCapacity:             "[msgbox] Capacity exhausted",
		ErrStructural:           "[msgbox] Malformed message",
		ErrReplay:               "[msgbox] Message number does not advance",
		ErrCommitmentMismatch:   "[msgbox] Witness does not match the commitment",
		ErrInvalidProof:         "[msgbox] Invalid proof",
		ErrMalformedTransaction: "[msgbox] Malformed transaction",
		ErrInternal:             "[msgbox] Internal error",
	}
)

// Error returns the error message corresponding to the error code e.
func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}
	return errorMessages[ErrInternal]
}

// CodeOf returns the ErrorCode carried by err: ReqSuccess for a nil
// error, the code itself for an ErrorCode and ErrInternal otherwise.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ReqSuccess
	}
	if e, ok := err.(ErrorCode); ok {
		return e
	}
	return ErrInternal
}
