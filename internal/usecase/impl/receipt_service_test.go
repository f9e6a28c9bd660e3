package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/service"
	mockService "marketplace/internal/mocks/service"
	mockUsecase "marketplace/internal/mocks/usecase"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type receiptMocks struct {
	orders *mockUsecase.MockOrderUsecase
	qrcode *mockService.MockQRCodeService
	store  *mockService.MockReceiptStore
}

func newReceiptService(t *testing.T) (usecase.ReceiptUsecase, receiptMocks) {
	t.Helper()

	m := receiptMocks{
		orders: mockUsecase.NewMockOrderUsecase(t),
		qrcode: mockService.NewMockQRCodeService(t),
		store:  mockService.NewMockReceiptStore(t),
	}

	return NewReceiptService(ReceiptServiceParams{
		Orders: m.orders,
		QRCode: m.qrcode,
		Store:  m.store,
		Logger: discardLogger(),
	}), m
}

func TestReceiptService_GetReceipt(t *testing.T) {
	ctx := context.Background()
	identity := customerIdentity()
	order := &entity.Order{ID: uuid.New(), CustomerID: identity.UserID, OrderNumber: "ORD20260101-0042"}
	key := "receipts/ORD20260101-0042.png"
	png := []byte("\x89PNG-receipt")

	t.Run("cached receipt is served without rendering", func(t *testing.T) {
		srv, m := newReceiptService(t)
		m.orders.EXPECT().GetOrder(ctx, identity, order.ID).Return(order, nil).Once()
		m.store.EXPECT().Get(ctx, key).Return(png, nil).Once()

		receipt, err := srv.GetReceipt(ctx, identity, order.ID)
		require.NoError(t, err)
		assert.Equal(t, png, receipt.Data)
		assert.Equal(t, "image/png", receipt.ContentType)
		assert.Equal(t, order.OrderNumber, receipt.OrderNumber)
	})

	t.Run("missing receipt is rendered and stored", func(t *testing.T) {
		srv, m := newReceiptService(t)
		m.orders.EXPECT().GetOrder(ctx, identity, order.ID).Return(order, nil).Once()
		m.store.EXPECT().Get(ctx, key).Return(nil, service.ErrReceiptNotFound).Once()
		m.qrcode.EXPECT().
			GenerateReceiptQR(service.ReceiptData{OrderID: order.ID, OrderNumber: order.OrderNumber}).
			Return(png, nil).
			Once()
		m.store.EXPECT().Put(ctx, key, png, "image/png").Return(nil).Once()

		receipt, err := srv.GetReceipt(ctx, identity, order.ID)
		require.NoError(t, err)
		assert.Equal(t, png, receipt.Data)
	})

	t.Run("storage failures do not fail the request", func(t *testing.T) {
		srv, m := newReceiptService(t)
		m.orders.EXPECT().GetOrder(ctx, identity, order.ID).Return(order, nil).Once()
		m.store.EXPECT().Get(ctx, key).Return(nil, errors.New("bucket unreachable")).Once()
		m.qrcode.EXPECT().GenerateReceiptQR(mock.Anything).Return(png, nil).Once()
		m.store.EXPECT().Put(ctx, key, png, "image/png").Return(errors.New("bucket unreachable")).Once()

		receipt, err := srv.GetReceipt(ctx, identity, order.ID)
		require.NoError(t, err)
		assert.Equal(t, png, receipt.Data)
	})

	t.Run("render failure is returned", func(t *testing.T) {
		srv, m := newReceiptService(t)
		m.orders.EXPECT().GetOrder(ctx, identity, order.ID).Return(order, nil).Once()
		m.store.EXPECT().Get(ctx, key).Return(nil, service.ErrReceiptNotFound).Once()
		m.qrcode.EXPECT().GenerateReceiptQR(mock.Anything).Return(nil, errors.New("encoder failed")).Once()

		_, err := srv.GetReceipt(ctx, identity, order.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render receipt")
	})

	t.Run("orders the caller cannot see have no receipt", func(t *testing.T) {
		srv, m := newReceiptService(t)
		m.orders.EXPECT().GetOrder(ctx, identity, order.ID).Return(nil, domainerrors.ErrOrderNotFound).Once()

		_, err := srv.GetReceipt(ctx, identity, order.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
	})
}
