package protocol

// Select returns a if cond holds and b otherwise.
// Both operands are evaluated by the caller, which keeps transitions
// free of data-dependent control flow.
func Select[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
