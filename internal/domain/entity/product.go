package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMinStock is the low-stock threshold given to new products.
const DefaultMinStock = 5

// Product is an item listed by a vendor.
type Product struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	MinStock    int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock reports whether stock is at or below the product's threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// IsOutOfStock reports whether no units remain.
func (p *Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// StockAction is a manual stock adjustment kind.
type StockAction string

const (
	StockActionIncrease StockAction = "increase"
	StockActionDecrease StockAction = "decrease"
	StockActionSet      StockAction = "set"
)

// IsValid checks if the action is a known value.
func (a StockAction) IsValid() bool {
	switch a {
	case StockActionIncrease, StockActionDecrease, StockActionSet:
		return true
	default:
		return false
	}
}

// AdjustStock returns the stock level after applying action with quantity to
// current. Decrease and set never go below zero; increase is unbounded.
func AdjustStock(current int, action StockAction, quantity int) (int, error) {
	if quantity < 0 {
		return current, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}

	switch action {
	case StockActionIncrease:
		return current + quantity, nil
	case StockActionDecrease:
		return max(current-quantity, 0), nil
	case StockActionSet:
		return max(quantity, 0), nil
	default:
		return current, fmt.Errorf("unknown stock action %q", action)
	}
}
