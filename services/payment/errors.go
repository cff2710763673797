package payment

import "errors"

var (
	// ErrMethodUnavailable is returned when a client asks for a payment
	// method the current mode does not offer.
	ErrMethodUnavailable = errors.New("payment method not available")

	// ErrWidgetUnavailable is returned when the card widget is requested
	// but no gateway public key is configured.
	ErrWidgetUnavailable = errors.New("card payments are not configured")

	// ErrPaymentNotStarted is returned when no payment session exists for
	// the funnel session.
	ErrPaymentNotStarted = errors.New("payment session not found")

	// ErrInvalidBank is returned when a transfer is confirmed without a
	// valid receiving account selected.
	ErrInvalidBank = errors.New("select a bank account first")

	// ErrProofRequired is returned when transfer confirmation is gated on
	// receipt verification and no accepted receipt is on file.
	ErrProofRequired = errors.New("upload your payment receipt first")

	// ErrReferenceMismatch is returned when a card callback carries a
	// reference that does not belong to the session.
	ErrReferenceMismatch = errors.New("payment reference mismatch")

	// ErrGateway wraps transport or gateway-level failures from the card
	// verify API and the hosted cashier API. Callers surface it as-is and
	// never retry automatically.
	ErrGateway = errors.New("payment gateway error")
)
