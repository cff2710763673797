package models

import "time"

// ReceiptProof is one uploaded proof-of-payment image.
type ReceiptProof struct {
	Filename string
	MimeType string
	Data     []byte
}

// ReceiptVerdict is the strict-JSON verdict returned by the vision
// verification service.
type ReceiptVerdict struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason"`
}

// UsedFingerprint is one persisted dedup key for a previously accepted
// receipt image.
type UsedFingerprint struct {
	Fingerprint string    `bson:"fingerprint" json:"fingerprint"`
	Filename    string    `bson:"filename" json:"filename"`
	UsedAt      time.Time `bson:"usedAt" json:"usedAt"`
}
