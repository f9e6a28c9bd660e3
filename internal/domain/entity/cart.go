package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product in a customer's cart. There is at most one line per
// (customer, product) pair.
type CartLine struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	AddedAt    time.Time
	UpdatedAt  time.Time

	// Product is populated by read paths that join the catalog.
	Product *Product
}

// Subtotal returns price x quantity, or zero when the product is not loaded.
func (l *CartLine) Subtotal() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}

	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
