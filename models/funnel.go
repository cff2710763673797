package models

import "time"

// View identifies one screen of the onboarding funnel.
type View string

const (
	ViewHome      View = "HOME"
	ViewSignup    View = "SIGNUP"
	ViewDashboard View = "DASHBOARD"
	ViewPayment   View = "PAYMENT"
	ViewSuccess   View = "SUCCESS"
)

// KnownView reports whether v is a reachable funnel view.
func KnownView(v View) bool {
	switch v {
	case ViewHome, ViewSignup, ViewDashboard, ViewPayment, ViewSuccess:
		return true
	}
	return false
}

// FunnelSession holds the navigation state for one visitor. It lives in
// Redis for the lifetime of the funnel; everything durable (the profile,
// used receipt fingerprints) lives in Mongo.
type FunnelSession struct {
	SessionID   string `json:"sessionId"`
	CurrentView View   `json:"currentView"`

	// History is the server-side analog of the browser history stack:
	// every committed navigation pushes the view it left.
	History []View `json:"history,omitempty"`

	// Transition bookkeeping. While a navigation's artificial delay is
	// pending, IsTransitioning is true and PendingView/TransitionID record
	// what will commit. A newer navigation replaces TransitionID so the
	// older commit becomes a no-op.
	IsTransitioning bool   `json:"isTransitioning"`
	PendingView     View   `json:"pendingView,omitempty"`
	TransitionID    string `json:"transitionId,omitempty"`

	// ResetScroll is set on commit and cleared after one read; the client
	// scrolls to top when it sees it.
	ResetScroll bool `json:"resetScroll,omitempty"`

	PendingUser *UserProfile `json:"pendingUser,omitempty"`

	// Exactly one of these is non-empty once a payment has completed.
	PaymentReference string `json:"paymentReference,omitempty"`
	PaymentBankLabel string `json:"paymentBankLabel,omitempty"`

	// DashboardEnteredAt drives the forced activation prompt (5 seconds
	// after first render for unactivated users).
	DashboardEnteredAt time.Time `json:"dashboardEnteredAt,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PaymentMethod classifies the success screen and the redirect message:
// a non-empty reference means "instant", an empty reference with a bank
// label means "manual".
func (s *FunnelSession) PaymentMethod() string {
	if s.PaymentReference != "" {
		return "instant"
	}
	if s.PaymentBankLabel != "" {
		return "manual"
	}
	return ""
}

// DashboardState describes the activation prompt as the dashboard view
// should render it.
type DashboardState struct {
	IsActivated  bool   `json:"isActivated"`
	PromptOpen   bool   `json:"promptOpen"`
	PromptForced bool   `json:"promptForced"`
	Notice       string `json:"notice,omitempty"`
}
