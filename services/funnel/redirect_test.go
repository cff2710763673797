package funnel

import (
	"context"
	"strings"
	"testing"

	"streamafrica/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSession(reference, bankLabel string) *models.FunnelSession {
	return &models.FunnelSession{
		SessionID:        "s1",
		CurrentView:      models.ViewSuccess,
		PendingUser:      adaProfile(),
		PaymentReference: reference,
		PaymentBankLabel: bankLabel,
	}
}

func TestRedirectMessageForInstantPayment(t *testing.T) {
	msg := buildRedirectMessage(completedSession("STREAM-42", ""))

	assert.Contains(t, msg, "Hello Stream Africa,")
	assert.Contains(t, msg, "Name: Ada Obi")
	assert.Contains(t, msg, "Username: ada")
	assert.Contains(t, msg, "Payment Method: Instant Payment")
	assert.Contains(t, msg, "Payment Ref: STREAM-42")
	assert.NotContains(t, msg, "Bank:")
	assert.True(t, strings.HasSuffix(msg, "Please verify my account."))
}

func TestRedirectMessageForManualTransfer(t *testing.T) {
	msg := buildRedirectMessage(completedSession("", "Moniepoint MFB (7010661707)"))

	assert.Contains(t, msg, "Payment Method: Manual Bank Transfer")
	assert.Contains(t, msg, "Bank: Moniepoint MFB (7010661707)")
	assert.NotContains(t, msg, "Payment Ref:")
}

func TestRedirectURLWhatsApp(t *testing.T) {
	cfg := testConfig()
	url := buildRedirectURL(cfg, completedSession("STREAM-42", ""))

	assert.True(t, strings.HasPrefix(url, "https://wa.me/2347010661707?text="))
	// The message body must be percent-encoded.
	assert.NotContains(t, url, " ")
	assert.NotContains(t, url, "\n")
}

func TestRedirectURLTelegramSeparator(t *testing.T) {
	cfg := testConfig()
	cfg.RedirectUseWhatsApp = false

	url := buildRedirectURL(cfg, completedSession("STREAM-42", ""))
	assert.True(t, strings.HasPrefix(url, "https://t.me/streamafrica_official?text="))

	cfg.TelegramURL = "https://t.me/streamafrica_official?start=1"
	url = buildRedirectURL(cfg, completedSession("STREAM-42", ""))
	assert.True(t, strings.HasPrefix(url, "https://t.me/streamafrica_official?start=1&text="))
}

func TestRedirectURLRequiresCompletedPayment(t *testing.T) {
	svc, store, _, _ := newTestFunnel(testConfig())
	session, err := svc.StartSession()
	require.NoError(t, err)

	_, err = svc.RedirectURL(session.SessionID)
	assert.ErrorIs(t, err, ErrNotCompleted)

	ctx := context.Background()
	stored, err := store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	stored.PendingUser = adaProfile()
	stored.PaymentReference = "STREAM-42"
	require.NoError(t, store.Save(ctx, stored))

	url, err := svc.RedirectURL(session.SessionID)
	require.NoError(t, err)
	assert.Contains(t, url, "wa.me")
}
