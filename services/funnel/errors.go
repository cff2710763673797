package funnel

import "errors"

var (
	// ErrSessionNotFound is returned when the funnel session is missing or
	// has expired; the client must start over.
	ErrSessionNotFound = errors.New("funnel session not found or expired")

	// ErrNotCompleted is returned when the redirect is requested before the
	// funnel reached the success view.
	ErrNotCompleted = errors.New("payment has not completed for this session")

	// ErrInvalidOutcome is returned when a payment completion carries
	// neither, or both, of reference and bank label.
	ErrInvalidOutcome = errors.New("payment outcome must carry exactly one of reference or bank label")
)
