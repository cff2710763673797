// File: handlers/verification.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"streamafrica/models"
	"streamafrica/services/payment"
	"streamafrica/services/verification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxReceiptBytes caps receipt uploads at 8 MiB.
const maxReceiptBytes = 8 << 20

type VerificationHandler struct {
	Verifier verification.ReceiptVerifier
	Payments payment.PaymentService
}

func NewVerificationHandler(verifier verification.ReceiptVerifier, payments payment.PaymentService) *VerificationHandler {
	return &VerificationHandler{Verifier: verifier, Payments: payments}
}

// UploadProofHandler accepts the transfer receipt image, runs it through
// verification, and records the outcome on the payment session.
func (h *VerificationHandler) UploadProofHandler(c *gin.Context) {
	logger := getLogger(c)

	if h.Verifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "receipt verification is not enabled"})
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required"})
		return
	}
	if fileHeader.Size > maxReceiptBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "receipt image too large"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt must be an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded receipt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read receipt"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes))
	if err != nil {
		logger.Error("Failed to read uploaded receipt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read receipt"})
		return
	}

	proof := &models.ReceiptProof{
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Data:     data,
	}

	fingerprint, verdict, err := h.Verifier.VerifyReceipt(c.Request.Context(), proof)
	if err != nil {
		var rejection *verification.RejectionError
		switch {
		case errors.Is(err, verification.ErrDuplicateReceipt):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &rejection):
			// Record the failed attempt so the confirm gate stays shut.
			if recErr := h.Payments.RecordProof(sessionID(c), fingerprint, false); recErr != nil {
				logger.Error("Failed to record rejected proof", zap.Error(recErr))
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejection.Reason, "verified": false})
		default:
			logger.Error("Receipt verification failed", zap.Error(err))
			c.JSON(statusForError(err), gin.H{"error": "verification failed, please try again"})
		}
		return
	}

	if err := h.Payments.RecordProof(sessionID(c), fingerprint, true); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true, "reason": verdict.Reason})
}
