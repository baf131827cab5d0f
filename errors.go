package match

import "errors"

var (
	// ErrPoolExhausted is returned when the slot allocator has no free order
	// slots left. It is fatal: the caller's submission did not take effect.
	ErrPoolExhausted = errors.New("match: order pool exhausted")

	// ErrInvalidQuantity is returned when a submission carries a zero
	// quantity. Rejected before any state changes.
	ErrInvalidQuantity = errors.New("match: quantity must be greater than zero")

	// ErrDuplicateOrderID is returned when a submission reuses the id of an
	// order that is currently resting in the book.
	ErrDuplicateOrderID = errors.New("match: order id is already resting")
)

// InvariantViolation is raised as a panic, never returned as an error value,
// because it indicates a bug in the engine itself rather than a caller
// mistake that could plausibly be handled by an error check.
type InvariantViolation struct {
	Reason string
}

func (e InvariantViolation) Error() string {
	return "match: invariant violation: " + e.Reason
}

func panicInvariant(reason string) {
	logger.Error("invariant violation", "reason", reason)
	panic(InvariantViolation{Reason: reason})
}
