// File: services/verification/fingerprint.go
package verification

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"streamafrica/models"
)

// fingerprintWindow is how much of the file body participates in the
// digest. The head of an image is enough to tell two receipts apart.
const fingerprintWindow = 2048

// Fingerprint derives a stable identity for an uploaded receipt from its
// leading bytes, its filename, and its size. The same file re-uploaded
// under the same name always maps to the same fingerprint.
func Fingerprint(proof *models.ReceiptProof) string {
	h := sha1.New()

	window := proof.Data
	if len(window) > fingerprintWindow {
		window = window[:fingerprintWindow]
	}
	h.Write(window)
	fmt.Fprintf(h, "%s:%d", proof.Filename, len(proof.Data))

	return hex.EncodeToString(h.Sum(nil))
}
