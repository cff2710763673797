// File: handlers/payment.go
package handlers

import (
	"net/http"
	"time"

	"streamafrica/config"
	"streamafrica/models"
	"streamafrica/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Svc payment.PaymentService
	Cfg *config.Config
}

func NewPaymentHandler(svc payment.PaymentService, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Cfg: cfg}
}

// MethodsHandler describes the payment step: offered methods, the amount
// due, and the receiving accounts for manual transfers.
func (h *PaymentHandler) MethodsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"methods":      h.Svc.OfferedMethods(),
		"amountNaira":  h.Cfg.ActivationAmountNaira,
		"amountKobo":   h.Cfg.AmountKobo(),
		"currency":     "NGN",
		"bankAccounts": h.Cfg.BankAccounts,
	})
}

// StateHandler returns the payment session, including the countdown
// remaining on a transfer window.
func (h *PaymentHandler) StateHandler(c *gin.Context) {
	session, err := h.Svc.State(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":          session,
		"remainingSeconds": session.Remaining(time.Now()),
	})
}

// CardInitHandler returns the inline checkout widget parameters.
func (h *PaymentHandler) CardInitHandler(c *gin.Context) {
	params, err := h.Svc.CardInit(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, params)
}

// CardCallbackHandler finalizes a widget payment.
func (h *PaymentHandler) CardCallbackHandler(c *gin.Context) {
	var input struct {
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.CardCallback(sessionID(c), input.Reference); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "payment recorded"})
}

// TransferStartHandler opens the manual transfer window.
func (h *PaymentHandler) TransferStartHandler(c *gin.Context) {
	session, err := h.Svc.StartTransfer(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session":          session,
		"remainingSeconds": session.Remaining(time.Now()),
		"bankAccounts":     h.Cfg.BankAccounts,
	})
}

// SelectBankHandler records the chosen receiving account.
func (h *PaymentHandler) SelectBankHandler(c *gin.Context) {
	var input struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Svc.SelectBank(sessionID(c), input.Index)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmTransferHandler completes the manual flow.
func (h *PaymentHandler) ConfirmTransferHandler(c *gin.Context) {
	if err := h.Svc.ConfirmTransfer(sessionID(c)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "payment recorded"})
}

// OpayStartHandler creates the hosted cashier checkout.
func (h *PaymentHandler) OpayStartHandler(c *gin.Context) {
	cashierURL, err := h.Svc.StartOpay(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cashierUrl": cashierURL})
}

// OpayCallbackHandler records the out-of-band cashier callback. It is
// unauthenticated; the cashier posts here directly.
func (h *PaymentHandler) OpayCallbackHandler(c *gin.Context) {
	logger := getLogger(c)

	var event models.OpayEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.RecordOpayEvent(&event); err != nil {
		logger.Error("Failed to record cashier callback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
