// File: services/dashboard/service.go
package dashboard

import (
	"context"
	"errors"
	"time"

	"streamafrica/models"
	"streamafrica/services/funnel"
)

// forcedPromptAfter is how long the demo dashboard is visible before an
// unactivated user gets the activation prompt with no way to dismiss it.
const forcedPromptAfter = 5 * time.Second

// Gated actions: every mutating or earning surface on the demo dashboard.
var gatedActions = map[string]bool{
	"topup":        true,
	"withdraw":     true,
	"stream-yield": true,
	"tcn-salary":   true,
	"bazaar":       true,
	"academy":      true,
	"referral":     true,
}

var ErrUnknownAction = errors.New("unknown dashboard action")

// DashboardService drives the demo surface: the forced activation prompt
// and the gate in front of every earning action.
type DashboardService interface {
	State(sessionID string) (*models.DashboardState, error)
	Action(sessionID, action string) (*models.DashboardState, error)
	Activate(sessionID string) error
}

// DefaultDashboardService reads the funnel session and derives prompt
// state; it persists nothing of its own.
type DefaultDashboardService struct {
	Sessions funnel.SessionStore
	Funnel   funnel.FunnelService

	// now is replaced in tests.
	Now func() time.Time
}

func NewDashboardService(sessions funnel.SessionStore, funnelSvc funnel.FunnelService) *DefaultDashboardService {
	return &DefaultDashboardService{
		Sessions: sessions,
		Funnel:   funnelSvc,
		Now:      time.Now,
	}
}

func (s *DefaultDashboardService) session(sessionID string) (*models.FunnelSession, error) {
	session, err := s.Sessions.Get(context.Background(), sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, funnel.ErrSessionNotFound
	}
	return session, nil
}

// State reports the current prompt state. Five seconds after entry the
// prompt force-opens for unactivated users and stays forced (no close
// affordance, backdrop clicks ignored) until activation or navigation
// away.
func (s *DefaultDashboardService) State(sessionID string) (*models.DashboardState, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	activated := session.PendingUser != nil && session.PendingUser.IsActivated
	state := &models.DashboardState{IsActivated: activated}

	if !activated && !session.DashboardEnteredAt.IsZero() &&
		s.Now().Sub(session.DashboardEnteredAt) >= forcedPromptAfter {
		state.PromptOpen = true
		state.PromptForced = true
	}
	return state, nil
}

// Action handles a tap on a gated surface. Unactivated users get the
// prompt back (dismissible this time) instead of the action.
func (s *DefaultDashboardService) Action(sessionID, action string) (*models.DashboardState, error) {
	if !gatedActions[action] {
		return nil, ErrUnknownAction
	}

	state, err := s.State(sessionID)
	if err != nil {
		return nil, err
	}
	if state.IsActivated {
		// The demo surface has nothing real behind the tiles; an
		// activated account simply isn't blocked.
		return state, nil
	}

	state.PromptOpen = true
	state.Notice = "Activate your account to unlock this feature."
	return state, nil
}

// Activate routes the funnel to the payment step. It does not flip the
// activation flag; only a completed payment does that.
func (s *DefaultDashboardService) Activate(sessionID string) error {
	return s.Funnel.NavigateTo(sessionID, models.ViewPayment)
}
