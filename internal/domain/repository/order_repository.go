package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber is returned when the generated order number is already taken.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// OrderFilter narrows order listings. VendorID keeps orders holding at least
// one item sold by that vendor.
type OrderFilter struct {
	CustomerID *uuid.UUID
	VendorID   *uuid.UUID
	Status     *entity.OrderStatus
	ListOptions
}

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists an order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUpdate retrieves an order with its items and locks the order row.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, at time.Time) error

	// List returns a page of orders, newest first, without items.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// ListVendorItems returns a page of a vendor's sold items, newest first,
	// optionally restricted to orders in the given status.
	ListVendorItems(ctx context.Context, vendorID uuid.UUID, status *entity.OrderStatus, opts ListOptions) ([]*entity.VendorOrderItem, int64, error)
}
