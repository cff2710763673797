package storage

import (
	"context"

	"streamafrica/models"
)

// StorageService archives accepted payment receipts so support can pull
// them up during manual reconciliation.
type StorageService interface {
	// UploadReceipt stores the receipt image and returns its permanent
	// identifier.
	UploadReceipt(ctx context.Context, proof *models.ReceiptProof) (string, error)

	// DeleteReceipt removes an archived receipt by its identifier.
	DeleteReceipt(ctx context.Context, publicID string) error

	// ReceiptURL constructs a viewable URL for an archived receipt.
	ReceiptURL(ctx context.Context, publicID string) (string, error)
}
