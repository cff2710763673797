// File: services/storage/storage.go
package storage

import (
	"bytes"
	"context"
	"fmt"

	"streamafrica/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const receiptFolder = "streamafrica/receipts"

// CloudinaryStorageService implements StorageService over Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService builds the Cloudinary-backed receipt archive.
func NewStorageService(cloudName, apiKey, apiSecret string) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld}, nil
}

// UploadReceipt streams the receipt bytes straight to the archive folder.
func (s *CloudinaryStorageService) UploadReceipt(ctx context.Context, proof *models.ReceiptProof) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(proof.Data), uploader.UploadParams{
		Folder:   receiptFolder,
		PublicID: proof.Filename,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("no public ID returned for receipt upload")
	}
	return result.PublicID, nil
}

// DeleteReceipt removes an archived receipt.
func (s *CloudinaryStorageService) DeleteReceipt(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return nil
}

// ReceiptURL constructs a public URL for an archived receipt image.
func (s *CloudinaryStorageService) ReceiptURL(ctx context.Context, publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve receipt asset: %w", err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build receipt URL: %w", err)
	}
	return url, nil
}
