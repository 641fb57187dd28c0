package scheduling

import "errors"

// Sentinel outcomes. Callers branch on these rather than on error text;
// the service layer maps them onto API error responses.
var (
	// ErrInvalidRange reports a candidate range with End <= Start.
	ErrInvalidRange = errors.New("time range end must be after start")

	// ErrConflict reports an overlap with an existing range under the
	// current policy. User-correctable, pick another time.
	ErrConflict = errors.New("time range conflicts with an existing booking")

	// ErrNoMatch reports that no technician satisfies an assignment
	// request. A normal negative outcome, not a failure.
	ErrNoMatch = errors.New("no eligible technician")

	// ErrInvalidInput reports a malformed request or roster. A caller
	// bug, never retried.
	ErrInvalidInput = errors.New("invalid assignment input")
)
