package verification

import (
	"context"
	"errors"
	"testing"

	"streamafrica/config"
	"streamafrica/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	reply string
	err   error
	calls int
}

func (m *fakeModel) Describe(_ context.Context, prompt, _ string, _ []byte) (string, error) {
	m.calls++
	return m.reply, m.err
}

type memFingerprints struct {
	used map[string]models.UsedFingerprint
}

func newMemFingerprints() *memFingerprints {
	return &memFingerprints{used: make(map[string]models.UsedFingerprint)}
}

func (r *memFingerprints) IsUsed(fingerprint string) (bool, error) {
	_, ok := r.used[fingerprint]
	return ok, nil
}

func (r *memFingerprints) Mark(fp models.UsedFingerprint) error {
	r.used[fp.Fingerprint] = fp
	return nil
}

func verifierConfig() *config.Config {
	return &config.Config{
		ActivationAmountNaira: 12000,
		TransferWindowMinutes: 30,
		BankAccounts: []config.BankAccount{
			{BankName: "Moniepoint MFB", AccountNumber: "7010661707", AccountName: "Chimezie David Igwe"},
		},
	}
}

func sampleProof() *models.ReceiptProof {
	return &models.ReceiptProof{
		Filename: "receipt.png",
		MimeType: "image/png",
		Data:     []byte("fake-png-bytes"),
	}
}

func TestFingerprintIsStable(t *testing.T) {
	a := Fingerprint(sampleProof())
	b := Fingerprint(sampleProof())
	assert.Equal(t, a, b)

	renamed := sampleProof()
	renamed.Filename = "receipt-2.png"
	assert.NotEqual(t, a, Fingerprint(renamed))

	altered := sampleProof()
	altered.Data = []byte("other-bytes")
	assert.NotEqual(t, a, Fingerprint(altered))
}

func TestAcceptedReceiptMarksFingerprint(t *testing.T) {
	model := &fakeModel{reply: `{"verified": true, "reason": "matches the expected transfer"}`}
	fingerprints := newMemFingerprints()
	v := NewReceiptVerifier(model, fingerprints, nil, verifierConfig())

	fp, verdict, err := v.VerifyReceipt(context.Background(), sampleProof())
	require.NoError(t, err)

	assert.True(t, verdict.Verified)
	used, err := fingerprints.IsUsed(fp)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestDuplicateRejectedBeforeModelCall(t *testing.T) {
	model := &fakeModel{reply: `{"verified": true, "reason": "ok"}`}
	fingerprints := newMemFingerprints()
	v := NewReceiptVerifier(model, fingerprints, nil, verifierConfig())

	_, _, err := v.VerifyReceipt(context.Background(), sampleProof())
	require.NoError(t, err)
	require.Equal(t, 1, model.calls)

	_, _, err = v.VerifyReceipt(context.Background(), sampleProof())
	assert.ErrorIs(t, err, ErrDuplicateReceipt)
	assert.Equal(t, 1, model.calls, "the dedup gate must fire before the network")
}

func TestRejectedReceiptKeepsFingerprintUnused(t *testing.T) {
	model := &fakeModel{reply: `{"verified": false, "reason": "amount is NGN 2,000, expected NGN 12,000"}`}
	fingerprints := newMemFingerprints()
	v := NewReceiptVerifier(model, fingerprints, nil, verifierConfig())

	fp, _, err := v.VerifyReceipt(context.Background(), sampleProof())

	var rejection *RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Contains(t, rejection.Reason, "NGN 2,000")

	used, err := fingerprints.IsUsed(fp)
	require.NoError(t, err)
	assert.False(t, used, "a rejected receipt stays reusable for a retry with a better image")
}

func TestFencedVerdictIsParsed(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"verified\": true, \"reason\": \"ok\"}\n```"}
	v := NewReceiptVerifier(model, newMemFingerprints(), nil, verifierConfig())

	_, verdict, err := v.VerifyReceipt(context.Background(), sampleProof())
	require.NoError(t, err)
	assert.True(t, verdict.Verified)
}

func TestMalformedVerdictIsRejection(t *testing.T) {
	model := &fakeModel{reply: "The receipt looks fine to me!"}
	fingerprints := newMemFingerprints()
	v := NewReceiptVerifier(model, fingerprints, nil, verifierConfig())

	fp, _, err := v.VerifyReceipt(context.Background(), sampleProof())

	var rejection *RejectionError
	assert.True(t, errors.As(err, &rejection))

	used, err := fingerprints.IsUsed(fp)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestModelErrorPropagates(t *testing.T) {
	wantErr := errors.New("gemini generate error: quota exceeded")
	model := &fakeModel{err: wantErr}
	v := NewReceiptVerifier(model, newMemFingerprints(), nil, verifierConfig())

	_, _, err := v.VerifyReceipt(context.Background(), sampleProof())
	assert.ErrorIs(t, err, wantErr)

	var rejection *RejectionError
	assert.False(t, errors.As(err, &rejection), "transport failures are not verdicts")
}
