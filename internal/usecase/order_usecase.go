package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderInput defines the checkout details supplied by the customer.
// DeliveryFee is set by the caller from configuration.
type PlaceOrderInput struct {
	DeliveryAddress string
	DeliveryPhone   string
	DeliveryFee     decimal.Decimal
	Notes           string
	PaymentMethod   string
}

// PlaceOrderOutput summarises a placed order.
type PlaceOrderOutput struct {
	OrderID     uuid.UUID
	OrderNumber string
	TotalAmount decimal.Decimal
	Status      entity.OrderStatus
}

// OrderListFilter narrows the admin order listing.
type OrderListFilter struct {
	Status   *entity.OrderStatus
	VendorID *uuid.UUID
	repository.ListOptions
}

// OrderUsecase defines checkout and order lifecycle operations.
type OrderUsecase interface {
	// PlaceOrder converts the customer's cart into an order and settles it atomically.
	PlaceOrder(ctx context.Context, identity entity.Identity, input PlaceOrderInput) (*PlaceOrderOutput, error)

	// GetOrder returns an order to its customer or an admin.
	GetOrder(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*entity.Order, error)

	// ListCustomerOrders pages through the caller's own orders.
	ListCustomerOrders(ctx context.Context, identity entity.Identity, opts repository.ListOptions) ([]*entity.Order, int64, error)

	// CancelOrder cancels a pending order of the caller.
	CancelOrder(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*entity.Order, error)

	// UpdateOrderStatus moves an order along its lifecycle (admin).
	UpdateOrderStatus(ctx context.Context, identity entity.Identity, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// ListOrders pages through all orders (admin).
	ListOrders(ctx context.Context, identity entity.Identity, filter OrderListFilter) ([]*entity.Order, int64, error)

	// ListVendorOrderItems pages through the items sold by the caller's vendor account.
	ListVendorOrderItems(ctx context.Context, identity entity.Identity, status *entity.OrderStatus, opts repository.ListOptions) ([]*entity.VendorOrderItem, int64, error)
}
