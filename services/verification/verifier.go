// File: services/verification/verifier.go
package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"streamafrica/config"
	proofRepo "streamafrica/database/repository/proof"
	"streamafrica/models"
	"streamafrica/services/storage"
	"streamafrica/utils"

	"go.uber.org/zap"
)

// ErrDuplicateReceipt is returned when the uploaded file matches a
// fingerprint that already passed verification. The check runs before any
// model call.
var ErrDuplicateReceipt = errors.New("this receipt has already been used")

// RejectionError carries the model's reason for turning a receipt down.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return "receipt rejected: " + e.Reason
}

// ReceiptVerifier checks an uploaded transfer receipt against the expected
// payment.
type ReceiptVerifier interface {
	VerifyReceipt(ctx context.Context, proof *models.ReceiptProof) (string, *models.ReceiptVerdict, error)
}

// DefaultReceiptVerifier runs the fingerprint dedup gate, then asks the
// vision model for a strict-JSON verdict. Accepted fingerprints are
// persisted so the same receipt cannot activate twice.
type DefaultReceiptVerifier struct {
	Model        VisionModel
	Fingerprints proofRepo.FingerprintRepository
	Archive      storage.StorageService
	Cfg          *config.Config

	now func() time.Time
}

func NewReceiptVerifier(
	model VisionModel,
	fingerprints proofRepo.FingerprintRepository,
	archive storage.StorageService,
	cfg *config.Config,
) *DefaultReceiptVerifier {
	return &DefaultReceiptVerifier{
		Model:        model,
		Fingerprints: fingerprints,
		Archive:      archive,
		Cfg:          cfg,
		now:          time.Now,
	}
}

// VerifyReceipt returns the proof's fingerprint alongside the verdict.
// Ordering matters: a known fingerprint is rejected without ever reaching
// the network.
func (v *DefaultReceiptVerifier) VerifyReceipt(ctx context.Context, proof *models.ReceiptProof) (string, *models.ReceiptVerdict, error) {
	fingerprint := Fingerprint(proof)

	used, err := v.Fingerprints.IsUsed(fingerprint)
	if err != nil {
		return fingerprint, nil, err
	}
	if used {
		return fingerprint, nil, ErrDuplicateReceipt
	}

	raw, err := v.Model.Describe(ctx, v.buildPrompt(), proof.MimeType, proof.Data)
	if err != nil {
		utils.GetLogger().Error("receipt verification call failed", zap.Error(err))
		return fingerprint, nil, err
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		// A malformed model reply counts as a rejection, not a retry.
		utils.GetLogger().Warn("unparseable verification verdict", zap.String("raw", raw))
		return fingerprint, nil, &RejectionError{Reason: "could not read the receipt, please upload a clearer image"}
	}
	if !verdict.Verified {
		return fingerprint, verdict, &RejectionError{Reason: verdict.Reason}
	}

	if err := v.Fingerprints.Mark(models.UsedFingerprint{
		Fingerprint: fingerprint,
		Filename:    proof.Filename,
		UsedAt:      v.now(),
	}); err != nil {
		return fingerprint, nil, err
	}

	if v.Archive != nil {
		if _, err := v.Archive.UploadReceipt(ctx, proof); err != nil {
			// Archival is best-effort; the verdict stands.
			utils.GetLogger().Error("failed to archive receipt", zap.Error(err))
		}
	}
	return fingerprint, verdict, nil
}

// buildPrompt describes the expected payment and demands a bare JSON
// object back.
func (v *DefaultReceiptVerifier) buildPrompt() string {
	var banks []string
	for _, b := range v.Cfg.BankAccounts {
		banks = append(banks, fmt.Sprintf("%s, account %s (%s)", b.BankName, b.AccountNumber, b.AccountName))
	}

	var b strings.Builder
	b.WriteString("You are verifying a Nigerian bank transfer receipt image.\n")
	b.WriteString("The transfer is only valid if ALL of the following hold:\n")
	fmt.Fprintf(&b, "1. The amount is approximately NGN %d (minor formatting differences are fine).\n", v.Cfg.ActivationAmountNaira)
	b.WriteString("2. The receipt clearly shows a successful or completed transfer, not pending or failed.\n")
	fmt.Fprintf(&b, "3. The recipient matches one of these accounts: %s.\n", strings.Join(banks, "; "))
	fmt.Fprintf(&b, "4. The transaction timestamp is within the last %d minutes and on today's date (%s).\n",
		v.Cfg.TransferWindowMinutes, v.now().Format("2006-01-02"))
	b.WriteString("\nRespond with ONLY a JSON object, no markdown, in exactly this shape:\n")
	b.WriteString(`{"verified": true|false, "reason": "<short explanation>"}`)
	return b.String()
}

// parseVerdict decodes the model's reply, tolerating a fenced code block
// around the JSON but nothing else.
func parseVerdict(raw string) (*models.ReceiptVerdict, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var verdict models.ReceiptVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return nil, fmt.Errorf("invalid verdict payload: %w", err)
	}
	return &verdict, nil
}
