package impl

import (
	"context"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const receiptContentType = "image/png"

// receiptService implements the ReceiptUsecase interface.
type receiptService struct {
	orders usecase.OrderUsecase
	qrcode service.QRCodeService
	store  service.ReceiptStore
	logger *slog.Logger
}

// ReceiptServiceParams holds dependencies for ReceiptService, injected by Fx.
type ReceiptServiceParams struct {
	fx.In

	Orders usecase.OrderUsecase
	QRCode service.QRCodeService
	Store  service.ReceiptStore
	Logger *slog.Logger
}

// NewReceiptService creates a new receipt service instance
func NewReceiptService(params ReceiptServiceParams) usecase.ReceiptUsecase {
	return &receiptService{
		orders: params.Orders,
		qrcode: params.QRCode,
		store:  params.Store,
		logger: params.Logger,
	}
}

func receiptKey(orderNumber string) string {
	return "receipts/" + orderNumber + ".png"
}

// GetReceipt serves the cached receipt or renders and stores it on first use.
func (srv *receiptService) GetReceipt(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*usecase.Receipt, error) {
	order, err := srv.orders.GetOrder(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}

	key := receiptKey(order.OrderNumber)
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	data, err := srv.store.Get(ctx, key)
	if err == nil {
		return &usecase.Receipt{OrderNumber: order.OrderNumber, ContentType: receiptContentType, Data: data}, nil
	}
	if !errors.Is(err, service.ErrReceiptNotFound) {
		logger.Warn("Receipt cache read failed, rendering", slog.String("key", key), slog.Any("error", err))
	}

	data, err = srv.qrcode.GenerateReceiptQR(service.ReceiptData{OrderID: order.ID, OrderNumber: order.OrderNumber})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render receipt")
	}

	if err := srv.store.Put(ctx, key, data, receiptContentType); err != nil {
		logger.Warn("Failed to cache receipt", slog.String("key", key), slog.Any("error", err))
	}

	return &usecase.Receipt{OrderNumber: order.OrderNumber, ContentType: receiptContentType, Data: data}, nil
}
