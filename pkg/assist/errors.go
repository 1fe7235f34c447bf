package assist

import "errors"

// Failure kinds from the AI collaborator. The api layer branches on these to
// pick the user-facing message and always offers a manual-fallback path.
var (
	ErrTimeout       = errors.New("assist request timed out")
	ErrQuotaExceeded = errors.New("assist usage limit reached")
	ErrService       = errors.New("assist service error")
)

// ErrCandidateNotFound is returned when accept/reject references an unknown
// candidate id.
var ErrCandidateNotFound = errors.New("candidate not found")
