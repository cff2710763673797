package funnel

import "streamafrica/models"

// FunnelService owns the view state machine for one visitor: which view is
// current, what the history stack looks like, and the payment outcome that
// decides the success screen.
type FunnelService interface {
	// StartSession creates a fresh session at HOME and returns it.
	StartSession() (*models.FunnelSession, error)

	// GetSession returns the current session state. The ResetScroll flag
	// is cleared after the read that observed it.
	GetSession(sessionID string) (*models.FunnelSession, error)

	// NavigateTo begins a transition to the given view. Unknown views are
	// a silent no-op. The commit happens after the configured artificial
	// delay; a navigation issued in the meantime supersedes it.
	NavigateTo(sessionID string, view models.View) error

	// Back re-enters the most recently visited view, defaulting to HOME
	// when the history is empty.
	Back(sessionID string) error

	// AttachUser stores the onboarded profile on the session and routes to
	// the next step (dashboard or payment, or straight on when already
	// activated).
	AttachUser(sessionID string, profile *models.UserProfile) error

	// CompletePayment records the outcome of whichever payment path
	// finished. Exactly one of reference/bankLabel must be non-empty.
	// It flips the stored profile's activation flag if a profile exists,
	// then transitions to SUCCESS.
	CompletePayment(sessionID, reference, bankLabel string) error

	// RedirectURL formats the final summary message and returns the
	// messaging deep link. Only valid on the SUCCESS view.
	RedirectURL(sessionID string) (string, error)
}
