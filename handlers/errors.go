package handlers

import (
	"errors"
	"net/http"

	"streamafrica/services/funnel"
	"streamafrica/services/onboarding"
	"streamafrica/services/payment"
	"streamafrica/services/verification"
)

// statusForError maps service sentinel errors onto HTTP statuses. Unknown
// errors stay 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, funnel.ErrSessionNotFound),
		errors.Is(err, payment.ErrPaymentNotStarted),
		errors.Is(err, onboarding.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, onboarding.ErrLoginFailed):
		return http.StatusUnauthorized
	case errors.Is(err, onboarding.ErrFormIncomplete),
		errors.Is(err, payment.ErrInvalidBank),
		errors.Is(err, payment.ErrProofRequired),
		errors.Is(err, payment.ErrReferenceMismatch),
		errors.Is(err, funnel.ErrInvalidOutcome):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrMethodUnavailable):
		return http.StatusForbidden
	case errors.Is(err, payment.ErrWidgetUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, payment.ErrGateway):
		return http.StatusBadGateway
	case errors.Is(err, verification.ErrDuplicateReceipt),
		errors.Is(err, funnel.ErrNotCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
