package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// Receipt is a rendered order receipt image.
type Receipt struct {
	OrderNumber string
	ContentType string
	Data        []byte
}

// ReceiptUsecase renders and caches order receipts.
type ReceiptUsecase interface {
	// GetReceipt returns the QR receipt of an order visible to the caller.
	GetReceipt(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*Receipt, error)
}
