package qrcode

import (
	"encoding/json"
	"strings"

	"marketplace/config"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const receiptType = "order_receipt"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// ReceiptPayload is the JSON encoded inside a receipt QR code.
type ReceiptPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Type        string `json:"type"`
}

var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// NewQRCodeService renders size x size receipts. Unknown correction levels
// fall back to M.
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	level, ok := recoveryLevels[strings.ToUpper(strings.TrimSpace(errorCorrectionLevel))]
	if !ok {
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewQRCodeServiceFromConfig builds the service from the qrcode config section.
func NewQRCodeServiceFromConfig(cfg *config.Config) service.QRCodeService {
	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// GenerateReceiptQR renders the receipt payload as a PNG QR code.
func (s *qrcodeService) GenerateReceiptQR(data service.ReceiptData) ([]byte, error) {
	jsonData, err := json.Marshal(ReceiptPayload{
		OrderID:     data.OrderID.String(),
		OrderNumber: data.OrderNumber,
		Type:        receiptType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseReceiptQR decodes scanned QR content back into receipt data.
func (s *qrcodeService) ParseReceiptQR(content string) (*service.ReceiptData, error) {
	var payload ReceiptPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if payload.Type != receiptType {
		return nil, errors.Errorf("not a receipt QR code: type %q", payload.Type)
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse order ID")
	}

	return &service.ReceiptData{
		OrderID:     orderID,
		OrderNumber: payload.OrderNumber,
	}, nil
}
