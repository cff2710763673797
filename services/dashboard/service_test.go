package dashboard

import (
	"context"
	"testing"
	"time"

	"streamafrica/models"
	"streamafrica/services/funnel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	sessions map[string]*models.FunnelSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*models.FunnelSession)}
}

func (s *memStore) Get(_ context.Context, sessionID string) (*models.FunnelSession, error) {
	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (s *memStore) Save(_ context.Context, session *models.FunnelSession) error {
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *memStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// stubFunnel records navigation requests.
type stubFunnel struct {
	funnel.FunnelService
	navigations []models.View
}

func (f *stubFunnel) NavigateTo(_ string, view models.View) error {
	f.navigations = append(f.navigations, view)
	return nil
}

func newTestDashboard(entered time.Time, activated bool) (*DefaultDashboardService, *stubFunnel, string) {
	store := newMemStore()
	stub := &stubFunnel{}

	sessionID := "s1"
	store.sessions[sessionID] = &models.FunnelSession{
		SessionID:   sessionID,
		CurrentView: models.ViewDashboard,
		PendingUser: &models.UserProfile{
			Name:        "Ada Obi",
			Username:    "ada",
			Email:       "ada@example.com",
			Phone:       "08012345678",
			Password:    "secret123",
			IsActivated: activated,
		},
		DashboardEnteredAt: entered,
	}

	svc := NewDashboardService(store, stub)
	return svc, stub, sessionID
}

func TestStateBeforeForcedPromptWindow(t *testing.T) {
	now := time.Now()
	svc, _, sessionID := newTestDashboard(now, false)
	svc.Now = func() time.Time { return now.Add(2 * time.Second) }

	state, err := svc.State(sessionID)
	require.NoError(t, err)
	assert.False(t, state.PromptOpen)
	assert.False(t, state.PromptForced)
}

func TestStateForcesPromptAfterFiveSeconds(t *testing.T) {
	now := time.Now()
	svc, _, sessionID := newTestDashboard(now, false)
	svc.Now = func() time.Time { return now.Add(5 * time.Second) }

	state, err := svc.State(sessionID)
	require.NoError(t, err)
	assert.True(t, state.PromptOpen)
	assert.True(t, state.PromptForced)
	assert.False(t, state.IsActivated)
}

func TestActivatedUserNeverPrompted(t *testing.T) {
	now := time.Now()
	svc, _, sessionID := newTestDashboard(now, true)
	svc.Now = func() time.Time { return now.Add(time.Minute) }

	state, err := svc.State(sessionID)
	require.NoError(t, err)
	assert.True(t, state.IsActivated)
	assert.False(t, state.PromptOpen)
}

func TestGatedActionReopensDismissiblePrompt(t *testing.T) {
	now := time.Now()
	svc, _, sessionID := newTestDashboard(now, false)
	svc.Now = func() time.Time { return now.Add(time.Second) }

	state, err := svc.Action(sessionID, "withdraw")
	require.NoError(t, err)
	assert.True(t, state.PromptOpen)
	assert.False(t, state.PromptForced, "action prompt stays dismissible")
	assert.NotEmpty(t, state.Notice)
}

func TestGatedActionPassesForActivatedUser(t *testing.T) {
	now := time.Now()
	svc, _, sessionID := newTestDashboard(now, true)
	svc.Now = func() time.Time { return now }

	state, err := svc.Action(sessionID, "topup")
	require.NoError(t, err)
	assert.False(t, state.PromptOpen)
	assert.Empty(t, state.Notice)
}

func TestUnknownActionRejected(t *testing.T) {
	svc, _, sessionID := newTestDashboard(time.Now(), false)

	_, err := svc.Action(sessionID, "jackpot")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActivateRoutesToPayment(t *testing.T) {
	svc, stub, sessionID := newTestDashboard(time.Now(), false)

	require.NoError(t, svc.Activate(sessionID))
	assert.Equal(t, []models.View{models.ViewPayment}, stub.navigations)
}

func TestStateUnknownSession(t *testing.T) {
	svc, _, _ := newTestDashboard(time.Now(), false)

	_, err := svc.State("missing")
	assert.ErrorIs(t, err, funnel.ErrSessionNotFound)
}
