// File: services/payment/service.go
package payment

import (
	"context"
	"fmt"
	"time"

	"streamafrica/config"
	"streamafrica/models"
	"streamafrica/services/funnel"
	"streamafrica/utils"

	"go.uber.org/zap"
)

// ExpiryScheduler arranges for Expire to be called on a payment session at
// a point in the future. The asynq-backed implementation lives in the
// tasks package.
type ExpiryScheduler interface {
	ScheduleExpiry(sessionID string, at time.Time) error
}

// PaymentService owns the payment step: which methods the selector offers,
// the card widget handshake, the manual transfer window, and the hosted
// cashier handoff.
type PaymentService interface {
	// OfferedMethods returns the methods the current payment mode allows,
	// in display order.
	OfferedMethods() []string

	// State returns the payment session for the funnel session, or
	// ErrPaymentNotStarted. A pending expiry notice is consumed by the
	// read that observed it.
	State(sessionID string) (*models.PaymentSession, error)

	// CardInit opens a card payment session and returns the parameters
	// the client hands to the inline checkout widget.
	CardInit(sessionID string) (*models.CardWidgetParams, error)

	// CardCallback handles the widget's success callback. When a secret
	// key is configured the transaction is re-verified with the gateway
	// before the funnel advances.
	CardCallback(sessionID, reference string) error

	// StartTransfer opens a manual transfer session with a countdown
	// window and schedules its expiry.
	StartTransfer(sessionID string) (*models.PaymentSession, error)

	// SelectBank records which configured receiving account the user
	// picked.
	SelectBank(sessionID string, index int) (*models.PaymentSession, error)

	// RecordProof attaches a receipt verification outcome to the session.
	RecordProof(sessionID, fingerprint string, verified bool) error

	// ConfirmTransfer completes the manual flow: a bank must be selected
	// and, when verification is enforced, an accepted receipt on file.
	ConfirmTransfer(sessionID string) error

	// StartOpay creates a hosted cashier checkout and returns its URL.
	// The in-app flow ends here; completion arrives out-of-band.
	StartOpay(sessionID string) (string, error)

	// RecordOpayEvent stores an out-of-band cashier callback.
	RecordOpayEvent(event *models.OpayEvent) error

	// Expire marks a transfer window as lapsed. Fires at most once per
	// session; under "reset" behavior it also clears the session and
	// steps the funnel back.
	Expire(sessionID string) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Store     PaymentStore
	Funnel    funnel.FunnelService
	Sessions  funnel.SessionStore
	Gateway   CardGateway
	Cashier   CashierClient
	Scheduler ExpiryScheduler
	Cfg       *config.Config

	// RequireProof gates ConfirmTransfer on an accepted receipt. It is
	// enabled when a verification key is configured.
	RequireProof bool

	now          func() time.Time
	newReference func() string
}

func NewPaymentService(
	store PaymentStore,
	funnelSvc funnel.FunnelService,
	sessions funnel.SessionStore,
	gateway CardGateway,
	cashier CashierClient,
	scheduler ExpiryScheduler,
	cfg *config.Config,
) *DefaultPaymentService {
	return &DefaultPaymentService{
		Store:        store,
		Funnel:       funnelSvc,
		Sessions:     sessions,
		Gateway:      gateway,
		Cashier:      cashier,
		Scheduler:    scheduler,
		Cfg:          cfg,
		RequireProof: cfg.GeminiAPIKey != "",
		now:          time.Now,
		newReference: func() string {
			return fmt.Sprintf("STREAM-%d", time.Now().UnixMilli())
		},
	}
}

func (s *DefaultPaymentService) OfferedMethods() []string {
	switch s.Cfg.PaymentMode {
	case config.PaymentModeCard:
		return []string{models.MethodCard}
	case config.PaymentModeTransfer:
		return []string{models.MethodTransfer}
	default:
		return []string{models.MethodTransfer, models.MethodOpay}
	}
}

func (s *DefaultPaymentService) offered(method string) bool {
	for _, m := range s.OfferedMethods() {
		if m == method {
			return true
		}
	}
	return false
}

func (s *DefaultPaymentService) funnelSession(sessionID string) (*models.FunnelSession, error) {
	session, err := s.Sessions.Get(context.Background(), sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.PendingUser == nil {
		return nil, funnel.ErrSessionNotFound
	}
	return session, nil
}

func (s *DefaultPaymentService) State(sessionID string) (*models.PaymentSession, error) {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrPaymentNotStarted
	}

	// The expiry notice is one-shot: the first read after the window
	// lapses carries ExpiryNotified=false, later reads carry true.
	if session.Expired && !session.ExpiryNotified {
		notified := *session
		notified.ExpiryNotified = true
		if err := s.Store.Save(ctx, &notified); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *DefaultPaymentService) CardInit(sessionID string) (*models.CardWidgetParams, error) {
	if !s.offered(models.MethodCard) {
		return nil, ErrMethodUnavailable
	}
	if s.Cfg.PaystackPublicKey == "" {
		return nil, ErrWidgetUnavailable
	}

	funnelSession, err := s.funnelSession(sessionID)
	if err != nil {
		return nil, err
	}
	user := funnelSession.PendingUser

	session := &models.PaymentSession{
		SessionID:         sessionID,
		Method:            models.MethodCard,
		Reference:         s.newReference(),
		SelectedBankIndex: -1,
		CreatedAt:         s.now(),
	}
	if err := s.Store.Save(context.Background(), session); err != nil {
		return nil, err
	}

	return &models.CardWidgetParams{
		PublicKey:  s.Cfg.PaystackPublicKey,
		AmountKobo: s.Cfg.AmountKobo(),
		Currency:   "NGN",
		Email:      user.Email,
		Reference:  session.Reference,
		CustomFields: []models.CardCustomField{
			{DisplayName: "Mobile Number", VariableName: "mobile_number", Value: user.Phone},
			{DisplayName: "Username", VariableName: "username", Value: user.Username},
		},
		IframePermissions: []string{"payment", "clipboard-read", "clipboard-write", "camera"},
	}, nil
}

func (s *DefaultPaymentService) CardCallback(sessionID, reference string) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.Method != models.MethodCard {
		return ErrPaymentNotStarted
	}
	if reference != session.Reference {
		return ErrReferenceMismatch
	}

	// Never trust the widget callback alone when we can ask the gateway.
	if s.Gateway != nil && s.Cfg.PaystackSecretKey != "" {
		tx, err := s.Gateway.VerifyTransaction(ctx, reference)
		if err != nil {
			return err
		}
		if tx.Status != "success" {
			return fmt.Errorf("%w: transaction status %q", ErrGateway, tx.Status)
		}
		if tx.Amount < s.Cfg.AmountKobo() {
			return fmt.Errorf("%w: underpaid transaction", ErrGateway)
		}
	}

	if err := s.Funnel.CompletePayment(sessionID, reference, ""); err != nil {
		return err
	}
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultPaymentService) StartTransfer(sessionID string) (*models.PaymentSession, error) {
	if !s.offered(models.MethodTransfer) {
		return nil, ErrMethodUnavailable
	}
	if _, err := s.funnelSession(sessionID); err != nil {
		return nil, err
	}

	deadline := s.now().Add(time.Duration(s.Cfg.TransferWindowMinutes) * time.Minute)
	session := &models.PaymentSession{
		SessionID:         sessionID,
		Method:            models.MethodTransfer,
		Reference:         s.newReference(),
		SelectedBankIndex: -1,
		Deadline:          deadline,
		CreatedAt:         s.now(),
	}
	if err := s.Store.Save(context.Background(), session); err != nil {
		return nil, err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleExpiry(sessionID, deadline); err != nil {
			// The countdown still lapses client-side; log and continue.
			utils.GetLogger().Error("failed to schedule transfer expiry",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return session, nil
}

func (s *DefaultPaymentService) SelectBank(sessionID string, index int) (*models.PaymentSession, error) {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Method != models.MethodTransfer {
		return nil, ErrPaymentNotStarted
	}
	if index < 0 || index >= len(s.Cfg.BankAccounts) {
		return nil, ErrInvalidBank
	}

	session.SelectedBankIndex = index
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DefaultPaymentService) RecordProof(sessionID, fingerprint string, verified bool) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.Method != models.MethodTransfer {
		return ErrPaymentNotStarted
	}

	session.ProofFingerprint = fingerprint
	session.ProofVerified = verified
	return s.Store.Save(ctx, session)
}

func (s *DefaultPaymentService) ConfirmTransfer(sessionID string) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.Method != models.MethodTransfer {
		return ErrPaymentNotStarted
	}
	if session.SelectedBankIndex < 0 || session.SelectedBankIndex >= len(s.Cfg.BankAccounts) {
		return ErrInvalidBank
	}
	if s.RequireProof && !session.ProofVerified {
		return ErrProofRequired
	}

	bank := s.Cfg.BankAccounts[session.SelectedBankIndex]
	if err := s.Funnel.CompletePayment(sessionID, "", bank.Label()); err != nil {
		return err
	}
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultPaymentService) StartOpay(sessionID string) (string, error) {
	if !s.offered(models.MethodOpay) {
		return "", ErrMethodUnavailable
	}
	if s.Cashier == nil {
		return "", ErrWidgetUnavailable
	}

	funnelSession, err := s.funnelSession(sessionID)
	if err != nil {
		return "", err
	}
	user := funnelSession.PendingUser

	session := &models.PaymentSession{
		SessionID:         sessionID,
		Method:            models.MethodOpay,
		Reference:         s.newReference(),
		SelectedBankIndex: -1,
		CreatedAt:         s.now(),
	}
	if err := s.Store.Save(context.Background(), session); err != nil {
		return "", err
	}

	cashierURL, err := s.Cashier.CreateCashier(context.Background(), &CashierRequest{
		Country:     "NG",
		Reference:   session.Reference,
		Amount:      CashierAmount{Total: s.Cfg.AmountKobo(), Currency: "NGN"},
		ReturnURL:   s.Cfg.OpayReturnURL,
		CallbackURL: s.Cfg.OpayCallbackURL,
		CancelURL:   s.Cfg.OpayCancelURL,
		ExpireAt:    s.Cfg.TransferWindowMinutes,
		UserInfo: CashierUserInfo{
			UserEmail:  user.Email,
			UserMobile: user.Phone,
			UserName:   user.Name,
			UserID:     user.Username,
		},
		Product: CashierProduct{
			Name:        "Stream Africa Activation",
			Description: "Account activation fee",
		},
		PayMethod: "BankCard",
	})
	if err != nil {
		return "", err
	}
	return cashierURL, nil
}

func (s *DefaultPaymentService) RecordOpayEvent(event *models.OpayEvent) error {
	event.Received = s.now()
	utils.GetLogger().Info("OPay cashier callback",
		zap.String("reference", event.Reference),
		zap.String("status", event.Status))
	return s.Store.SaveEvent(context.Background(), event)
}

func (s *DefaultPaymentService) Expire(sessionID string) error {
	ctx := context.Background()
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	// The session may have completed or switched methods since the task
	// was scheduled.
	if session == nil || session.Method != models.MethodTransfer || session.Expired {
		return nil
	}
	if s.now().Before(session.Deadline) {
		return nil
	}

	if s.Cfg.TransferExpiryBehavior == config.ExpiryReset {
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			return err
		}
		return s.Funnel.Back(sessionID)
	}

	session.Expired = true
	return s.Store.Save(ctx, session)
}
