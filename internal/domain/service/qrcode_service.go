package service

import (
	"github.com/google/uuid"
)

// ReceiptData is the content encoded in an order receipt QR code.
type ReceiptData struct {
	OrderID     uuid.UUID
	OrderNumber string
}

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateReceiptQR generates a PNG QR code for an order receipt
	GenerateReceiptQR(data ReceiptData) ([]byte, error)

	// ParseReceiptQR parses QR code content back into receipt data
	ParseReceiptQR(content string) (*ReceiptData, error)
}
