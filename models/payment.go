package models

import "time"

// Payment methods offered by the selector, gated by configuration.
const (
	MethodCard     = "CARD"
	MethodTransfer = "TRANSFER"
	MethodOpay     = "OPAY"
)

// PaymentSession is the ephemeral state of the payment step. It is keyed by
// the funnel session ID and discarded once the funnel leaves the payment
// view or the transfer window lapses under "reset" behavior.
type PaymentSession struct {
	SessionID string `json:"sessionId"`
	Method    string `json:"method"`

	// Reference is generated locally when the session opens, in the
	// "STREAM-<n>" form the checkout widget and the cashier API receive.
	Reference string `json:"reference"`

	// Transfer state. SelectedBankIndex is -1 until the user picks a row.
	SelectedBankIndex int       `json:"selectedBankIndex"`
	Deadline          time.Time `json:"deadline,omitempty"`
	Expired           bool      `json:"expired"`
	ExpiryNotified    bool      `json:"expiryNotified"`

	// Receipt proof state.
	ProofFingerprint string `json:"proofFingerprint,omitempty"`
	ProofVerified    bool   `json:"proofVerified"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Remaining returns the whole seconds left in the transfer window at now,
// clamped at zero. Zero for non-transfer sessions.
func (p *PaymentSession) Remaining(now time.Time) int {
	if p.Deadline.IsZero() || !now.Before(p.Deadline) {
		return 0
	}
	return int(p.Deadline.Sub(now).Seconds())
}

// CardWidgetParams is everything the client needs to open the inline
// checkout widget. IframePermissions is applied by the client to the
// widget container only, never globally.
type CardWidgetParams struct {
	PublicKey         string            `json:"publicKey"`
	AmountKobo        int64             `json:"amountKobo"`
	Currency          string            `json:"currency"`
	Email             string            `json:"email"`
	Reference         string            `json:"reference"`
	CustomFields      []CardCustomField `json:"customFields"`
	IframePermissions []string          `json:"iframePermissions"`
}

// CardCustomField is one metadata entry passed to the checkout widget.
type CardCustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// OpayEvent records an out-of-band completion callback from the hosted
// cashier. Nothing in the funnel depends on it; the in-app flow ends when
// the cashier URL is issued.
type OpayEvent struct {
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	Raw       string    `json:"raw,omitempty"`
	Received  time.Time `json:"received"`
}
