package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemInput defines the data required to put a product in the cart.
type AddCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartView is a customer's cart with its computed totals.
type CartView struct {
	Lines []*entity.CartLine
	Total decimal.Decimal
}

// ItemCount returns the number of units across all lines.
func (v *CartView) ItemCount() int {
	count := 0
	for _, line := range v.Lines {
		count += line.Quantity
	}

	return count
}

// CartUsecase defines the shopping cart operations of a customer.
type CartUsecase interface {
	// AddItem creates the line for a product or increases its quantity.
	AddItem(ctx context.Context, identity entity.Identity, input AddCartItemInput) (*entity.CartLine, error)

	// ListCart returns the lines with their products and the cart total.
	ListCart(ctx context.Context, identity entity.Identity) (*CartView, error)

	// UpdateItemQuantity overwrites the quantity of an existing line.
	UpdateItemQuantity(ctx context.Context, identity entity.Identity, productID uuid.UUID, quantity int) (*entity.CartLine, error)

	// RemoveItem deletes the line for a product.
	RemoveItem(ctx context.Context, identity entity.Identity, productID uuid.UUID) error
}
