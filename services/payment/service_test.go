package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"streamafrica/config"
	"streamafrica/models"
	"streamafrica/services/funnel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPaymentStore struct {
	sessions map[string]*models.PaymentSession
	events   []*models.OpayEvent
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{sessions: make(map[string]*models.PaymentSession)}
}

func (s *memPaymentStore) Get(_ context.Context, sessionID string) (*models.PaymentSession, error) {
	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (s *memPaymentStore) Save(_ context.Context, session *models.PaymentSession) error {
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *memPaymentStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *memPaymentStore) SaveEvent(_ context.Context, event *models.OpayEvent) error {
	s.events = append(s.events, event)
	return nil
}

type memSessionStore struct {
	sessions map[string]*models.FunnelSession
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*models.FunnelSession, error) {
	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (s *memSessionStore) Save(_ context.Context, session *models.FunnelSession) error {
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// fakeFunnel records completion and back calls.
type fakeFunnel struct {
	funnel.FunnelService
	completedRef  string
	completedBank string
	completions   int
	backs         int
}

func (f *fakeFunnel) CompletePayment(_, reference, bankLabel string) error {
	f.completedRef = reference
	f.completedBank = bankLabel
	f.completions++
	return nil
}

func (f *fakeFunnel) Back(_ string) error {
	f.backs++
	return nil
}

type fakeScheduler struct {
	scheduled []time.Time
}

func (s *fakeScheduler) ScheduleExpiry(_ string, at time.Time) error {
	s.scheduled = append(s.scheduled, at)
	return nil
}

func testPaymentConfig(mode string) *config.Config {
	return &config.Config{
		PaymentMode:           mode,
		ActivationAmountNaira: 12000,
		TransferWindowMinutes: 30,
		BankAccounts: []config.BankAccount{
			{BankName: "Moniepoint MFB", AccountNumber: "7010661707", AccountName: "Chimezie David Igwe"},
		},
		TransferExpiryBehavior: config.ExpiryWarn,
		PaystackPublicKey:      "pk_test_x",
	}
}

type paymentFixture struct {
	svc       *DefaultPaymentService
	store     *memPaymentStore
	funnel    *fakeFunnel
	scheduler *fakeScheduler
	sessionID string
	now       time.Time
}

func newPaymentFixture(t *testing.T, cfg *config.Config) *paymentFixture {
	t.Helper()

	sessionID := "s1"
	sessions := &memSessionStore{sessions: map[string]*models.FunnelSession{
		sessionID: {
			SessionID:   sessionID,
			CurrentView: models.ViewPayment,
			PendingUser: &models.UserProfile{
				Name:     "Ada Obi",
				Username: "ada",
				Email:    "ada@example.com",
				Phone:    "08012345678",
				Password: "secret123",
			},
		},
	}}

	store := newMemPaymentStore()
	fun := &fakeFunnel{}
	sched := &fakeScheduler{}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	svc := NewPaymentService(store, fun, sessions, nil, nil, sched, cfg)
	svc.now = func() time.Time { return now }
	svc.newReference = func() string { return "STREAM-42" }

	return &paymentFixture{
		svc: svc, store: store, funnel: fun, scheduler: sched,
		sessionID: sessionID, now: now,
	}
}

func TestOfferedMethodsFollowPaymentMode(t *testing.T) {
	cases := []struct {
		mode string
		want []string
	}{
		{config.PaymentModeCard, []string{models.MethodCard}},
		{config.PaymentModeTransfer, []string{models.MethodTransfer}},
		{config.PaymentModeNeutral, []string{models.MethodTransfer, models.MethodOpay}},
	}
	for _, tc := range cases {
		f := newPaymentFixture(t, testPaymentConfig(tc.mode))
		assert.Equal(t, tc.want, f.svc.OfferedMethods(), "mode %s", tc.mode)
	}
}

func TestCardInitReturnsWidgetParams(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeCard))

	params, err := f.svc.CardInit(f.sessionID)
	require.NoError(t, err)

	assert.Equal(t, "pk_test_x", params.PublicKey)
	assert.Equal(t, int64(1_200_000), params.AmountKobo)
	assert.Equal(t, "NGN", params.Currency)
	assert.Equal(t, "ada@example.com", params.Email)
	assert.True(t, strings.HasPrefix(params.Reference, "STREAM-"))
	require.Len(t, params.CustomFields, 2)
	assert.Equal(t, "Mobile Number", params.CustomFields[0].DisplayName)
	assert.Equal(t, "08012345678", params.CustomFields[0].Value)
	assert.Equal(t, "Username", params.CustomFields[1].DisplayName)
	assert.Contains(t, params.IframePermissions, "payment")
}

func TestCardInitWithoutPublicKey(t *testing.T) {
	cfg := testPaymentConfig(config.PaymentModeCard)
	cfg.PaystackPublicKey = ""
	f := newPaymentFixture(t, cfg)

	_, err := f.svc.CardInit(f.sessionID)
	assert.ErrorIs(t, err, ErrWidgetUnavailable)
}

func TestCardInitBlockedOutsideCardMode(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeTransfer))

	_, err := f.svc.CardInit(f.sessionID)
	assert.ErrorIs(t, err, ErrMethodUnavailable)
}

func TestCardCallbackCompletesWithReference(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeCard))

	_, err := f.svc.CardInit(f.sessionID)
	require.NoError(t, err)

	require.NoError(t, f.svc.CardCallback(f.sessionID, "STREAM-42"))

	assert.Equal(t, "STREAM-42", f.funnel.completedRef)
	assert.Empty(t, f.funnel.completedBank)

	// The payment session is gone once the funnel has the outcome.
	_, err = f.svc.State(f.sessionID)
	assert.ErrorIs(t, err, ErrPaymentNotStarted)
}

func TestCardCallbackRejectsForeignReference(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeCard))

	_, err := f.svc.CardInit(f.sessionID)
	require.NoError(t, err)

	err = f.svc.CardCallback(f.sessionID, "STREAM-999")
	assert.ErrorIs(t, err, ErrReferenceMismatch)
	assert.Zero(t, f.funnel.completions)
}

func TestStartTransferSchedulesExpiry(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))

	session, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)

	wantDeadline := f.now.Add(30 * time.Minute)
	assert.Equal(t, wantDeadline, session.Deadline)
	assert.Equal(t, -1, session.SelectedBankIndex)
	require.Len(t, f.scheduler.scheduled, 1)
	assert.Equal(t, wantDeadline, f.scheduler.scheduled[0])
	assert.Equal(t, 1800, session.Remaining(f.now))
}

func TestSelectBankValidatesIndex(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))
	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)

	_, err = f.svc.SelectBank(f.sessionID, 5)
	assert.ErrorIs(t, err, ErrInvalidBank)

	session, err := f.svc.SelectBank(f.sessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, session.SelectedBankIndex)
}

func TestConfirmTransferRequiresBank(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))
	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.ConfirmTransfer(f.sessionID), ErrInvalidBank)
}

func TestConfirmTransferCompletesWithBankLabel(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))
	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)
	_, err = f.svc.SelectBank(f.sessionID, 0)
	require.NoError(t, err)

	require.NoError(t, f.svc.ConfirmTransfer(f.sessionID))

	assert.Empty(t, f.funnel.completedRef)
	assert.Equal(t, "Moniepoint MFB (7010661707)", f.funnel.completedBank)
}

func TestConfirmTransferGatedOnProof(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))
	f.svc.RequireProof = true

	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)
	_, err = f.svc.SelectBank(f.sessionID, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.ConfirmTransfer(f.sessionID), ErrProofRequired)

	// A rejected receipt keeps the gate shut.
	require.NoError(t, f.svc.RecordProof(f.sessionID, "fp1", false))
	assert.ErrorIs(t, f.svc.ConfirmTransfer(f.sessionID), ErrProofRequired)

	require.NoError(t, f.svc.RecordProof(f.sessionID, "fp2", true))
	require.NoError(t, f.svc.ConfirmTransfer(f.sessionID))
	assert.Equal(t, 1, f.funnel.completions)
}

func TestExpireMarksWindowOnce(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))
	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)

	// Before the deadline the task is a no-op.
	require.NoError(t, f.svc.Expire(f.sessionID))
	state, err := f.svc.State(f.sessionID)
	require.NoError(t, err)
	assert.False(t, state.Expired)

	f.svc.now = func() time.Time { return f.now.Add(31 * time.Minute) }
	require.NoError(t, f.svc.Expire(f.sessionID))

	// The first read carries the un-notified expiry, later reads do not.
	state, err = f.svc.State(f.sessionID)
	require.NoError(t, err)
	assert.True(t, state.Expired)
	assert.False(t, state.ExpiryNotified)

	state, err = f.svc.State(f.sessionID)
	require.NoError(t, err)
	assert.True(t, state.ExpiryNotified)
	assert.Zero(t, state.Remaining(f.svc.now()))
}

func TestExpireUnderResetBehavior(t *testing.T) {
	cfg := testPaymentConfig(config.PaymentModeNeutral)
	cfg.TransferExpiryBehavior = config.ExpiryReset
	f := newPaymentFixture(t, cfg)

	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)

	f.svc.now = func() time.Time { return f.now.Add(31 * time.Minute) }
	require.NoError(t, f.svc.Expire(f.sessionID))

	_, err = f.svc.State(f.sessionID)
	assert.ErrorIs(t, err, ErrPaymentNotStarted)
	assert.Equal(t, 1, f.funnel.backs)
}

func TestExpireAfterCompletionIsNoop(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))
	_, err := f.svc.StartTransfer(f.sessionID)
	require.NoError(t, err)
	_, err = f.svc.SelectBank(f.sessionID, 0)
	require.NoError(t, err)
	require.NoError(t, f.svc.ConfirmTransfer(f.sessionID))

	f.svc.now = func() time.Time { return f.now.Add(31 * time.Minute) }
	require.NoError(t, f.svc.Expire(f.sessionID))
	assert.Zero(t, f.funnel.backs)
}

func TestRecordOpayEvent(t *testing.T) {
	f := newPaymentFixture(t, testPaymentConfig(config.PaymentModeNeutral))

	require.NoError(t, f.svc.RecordOpayEvent(&models.OpayEvent{
		Reference: "STREAM-42",
		Status:    "SUCCESS",
	}))
	require.Len(t, f.store.events, 1)
	assert.Equal(t, f.now, f.store.events[0].Received)
}
