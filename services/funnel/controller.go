// File: services/funnel/controller.go
package funnel

import (
	"context"
	"time"

	"streamafrica/config"
	profileRepo "streamafrica/database/repository/profile"
	"streamafrica/models"
	"streamafrica/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFunnelService is the navigation controller. One view is current at
// a time; every terminal action on a view calls back in here, and the
// controller decides the transition, the history entry, and the commit.
type DefaultFunnelService struct {
	Store    SessionStore
	Profiles profileRepo.ProfileRepository
	Cfg      *config.Config

	// TransitionDelay is the artificial loading delay between marking a
	// transition and committing it. Decorative, not tied to computation.
	TransitionDelay time.Duration

	// after schedules the delayed commit; replaced in tests.
	after func(d time.Duration, f func())
}

// NewFunnelService wires the controller with the configured transition delay.
func NewFunnelService(store SessionStore, profiles profileRepo.ProfileRepository, cfg *config.Config) *DefaultFunnelService {
	return &DefaultFunnelService{
		Store:           store,
		Profiles:        profiles,
		Cfg:             cfg,
		TransitionDelay: time.Duration(cfg.TransitionDelayMS) * time.Millisecond,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// StartSession creates a new session at HOME.
func (s *DefaultFunnelService) StartSession() (*models.FunnelSession, error) {
	session := &models.FunnelSession{
		SessionID:   uuid.New().String(),
		CurrentView: models.ViewHome,
		CreatedAt:   time.Now(),
	}
	if err := s.Store.Save(context.Background(), session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the current state. ResetScroll is a one-shot flag:
// the read that observes it also clears it.
func (s *DefaultFunnelService) GetSession(sessionID string) (*models.FunnelSession, error) {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.ResetScroll {
		out := *session
		session.ResetScroll = false
		if err := s.Store.Save(ctx, session); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return session, nil
}

// NavigateTo begins a transition. Unknown views are ignored silently.
func (s *DefaultFunnelService) NavigateTo(sessionID string, view models.View) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if !models.KnownView(view) {
		return nil
	}

	transitionID := uuid.New().String()
	session.IsTransitioning = true
	session.PendingView = view
	session.TransitionID = transitionID
	if err := s.Store.Save(ctx, session); err != nil {
		return err
	}

	s.after(s.TransitionDelay, func() {
		if err := s.commitTransition(sessionID, transitionID); err != nil {
			utils.GetLogger().Warn("transition commit failed",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	})
	return nil
}

// commitTransition applies a pending view change. A transition that was
// superseded by a newer navigation (or by Back) finds a different
// TransitionID and does nothing; the stale timer must not mutate state.
func (s *DefaultFunnelService) commitTransition(sessionID, transitionID string) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.TransitionID != transitionID {
		return nil
	}

	s.applyView(session, session.PendingView, true)
	return s.Store.Save(ctx, session)
}

// applyView commits a view change on the session in place. Entering the
// dashboard or payment step without an onboarded user redirects to signup.
func (s *DefaultFunnelService) applyView(session *models.FunnelSession, target models.View, pushHistory bool) {
	if (target == models.ViewDashboard || target == models.ViewPayment) && session.PendingUser == nil {
		target = models.ViewSignup
	}

	if pushHistory && target != session.CurrentView {
		session.History = append(session.History, session.CurrentView)
	}
	if target == models.ViewDashboard {
		session.DashboardEnteredAt = time.Now()
	}

	session.CurrentView = target
	session.IsTransitioning = false
	session.PendingView = ""
	session.TransitionID = ""
	session.ResetScroll = true
}

// Back re-enters the previously visited view immediately; the platform
// back gesture carries its own affordance, so no artificial delay. Missing
// or unparseable history falls back to HOME.
func (s *DefaultFunnelService) Back(sessionID string) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	target := models.ViewHome
	if n := len(session.History); n > 0 {
		target = session.History[n-1]
		session.History = session.History[:n-1]
	}
	if !models.KnownView(target) {
		target = models.ViewHome
	}

	s.applyView(session, target, false)
	return s.Store.Save(ctx, session)
}

// AttachUser stores the onboarded profile and routes to the next step.
// Already-activated users skip the payment step entirely.
func (s *DefaultFunnelService) AttachUser(sessionID string, profile *models.UserProfile) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	session.PendingUser = profile
	if err := s.Store.Save(ctx, session); err != nil {
		return err
	}

	next := models.ViewPayment
	if profile.IsActivated || s.Cfg.ShowDashboardBeforePayment {
		next = models.ViewDashboard
	}
	return s.NavigateTo(sessionID, next)
}

// CompletePayment records the outcome, flips the stored profile's
// activation flag, and transitions to SUCCESS.
func (s *DefaultFunnelService) CompletePayment(sessionID, reference, bankLabel string) error {
	if (reference == "") == (bankLabel == "") {
		return ErrInvalidOutcome
	}

	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	session.PaymentReference = reference
	session.PaymentBankLabel = bankLabel

	profile, err := s.Profiles.Get()
	if err != nil {
		utils.GetLogger().Error("failed to load profile after payment", zap.Error(err))
	}
	if profile != nil {
		profile.IsActivated = true
		if err := s.Profiles.Save(profile); err != nil {
			utils.GetLogger().Error("failed to persist activation", zap.Error(err))
		}
	}
	if session.PendingUser != nil {
		session.PendingUser.IsActivated = true
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return err
	}
	return s.NavigateTo(sessionID, models.ViewSuccess)
}

// RedirectURL formats the final summary message and returns the messaging
// deep link. This is the funnel's terminal, irreversible action.
func (s *DefaultFunnelService) RedirectURL(sessionID string) (string, error) {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrSessionNotFound
	}
	if session.PaymentMethod() == "" || session.PendingUser == nil {
		return "", ErrNotCompleted
	}

	return buildRedirectURL(s.Cfg, session), nil
}
