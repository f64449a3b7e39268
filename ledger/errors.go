package ledger

import "errors"

// Validation failures raised by the engine. None are retryable; they all stem
// from invalid input. Callers match with errors.Is and decide the user-facing
// status themselves.
var (
	// ErrInvalidSplit covers EXACT contributions that do not sum to the
	// expense amount, non-positive WEIGHT contributions, and malformed
	// contribution values in general.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrPercentOverflow is returned when PERCENT contributions sum to
	// more than 100. Sums below 100 are accepted and leave part of the
	// amount unassigned.
	ErrPercentOverflow = errors.New("percent contributions exceed 100")

	// ErrUnbalancedLedger is returned by Simplify when total credit and
	// total debt disagree, which means the caller supplied an inconsistent
	// edge set.
	ErrUnbalancedLedger = errors.New("unbalanced ledger")

	// ErrEmptyParticipants is returned when an expense carries no
	// participants.
	ErrEmptyParticipants = errors.New("expense has no participants")
)
