package repository

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartLineNotFound is returned when the customer has no line for a product.
	ErrCartLineNotFound = errors.New("cart line not found")
	// ErrDuplicateCartLine is returned when a second line for the same product is inserted.
	ErrDuplicateCartLine = errors.New("cart line already exists")
)

// CartRepository defines the operations for shopping cart persistence.
type CartRepository interface {
	// FindLine retrieves the customer's line for a product.
	FindLine(ctx context.Context, customerID, productID uuid.UUID) (*entity.CartLine, error)

	// FindLineForUpdate retrieves the line and locks it until the transaction ends.
	FindLineForUpdate(ctx context.Context, customerID, productID uuid.UUID) (*entity.CartLine, error)

	// Create persists a new cart line.
	Create(ctx context.Context, line *entity.CartLine) error

	// UpdateQuantity overwrites the quantity of a line.
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// Delete removes the customer's line for a product.
	Delete(ctx context.Context, customerID, productID uuid.UUID) error

	// ListByCustomer returns the customer's lines, oldest first, with their products loaded.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CartLine, error)

	// ClearByCustomer removes every line of the customer and returns how many were removed.
	ClearByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
