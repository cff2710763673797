package proofRepo

import "streamafrica/models"

// FingerprintRepository is the persisted set of receipt fingerprints that
// already passed verification. IsUsed must be consulted before any network
// call; Mark is called only on a verified=true verdict.
type FingerprintRepository interface {
	IsUsed(fingerprint string) (bool, error)
	Mark(fp models.UsedFingerprint) error
}
