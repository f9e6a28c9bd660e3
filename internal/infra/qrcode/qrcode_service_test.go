package qrcode

import (
	"encoding/json"
	"testing"

	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Default error correction", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(256, tt.errorCorrectionLevel)
			assert.NotNil(t, svc)
		})
	}
}

func TestQRCodeService_GenerateReceiptQR(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		svc := NewQRCodeService(size, "M")

		qrBytes, err := svc.GenerateReceiptQR(service.ReceiptData{OrderID: uuid.New(), OrderNumber: "SN202610160042"})
		require.NoError(t, err)
		require.Greater(t, len(qrBytes), 4)

		// PNG magic number
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
	}
}

func TestQRCodeService_ParseReceiptQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	orderID := uuid.New()

	content, err := json.Marshal(ReceiptPayload{OrderID: orderID.String(), OrderNumber: "SN202610160042", Type: receiptType})
	require.NoError(t, err)

	data, err := svc.ParseReceiptQR(string(content))
	require.NoError(t, err)
	assert.Equal(t, orderID, data.OrderID)
	assert.Equal(t, "SN202610160042", data.OrderNumber)
}

func TestQRCodeService_ParseReceiptQR_Invalid(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	wrongType, err := json.Marshal(ReceiptPayload{OrderID: uuid.NewString(), Type: "subscription"})
	require.NoError(t, err)
	badID, err := json.Marshal(ReceiptPayload{OrderID: "not-a-valid-uuid", Type: receiptType})
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{name: "invalid json", content: "invalid json", errPart: "failed to unmarshal QR code data"},
		{name: "wrong type", content: string(wrongType), errPart: "not a receipt QR code"},
		{name: "invalid order id", content: string(badID), errPart: "failed to parse order ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseReceiptQR(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}
