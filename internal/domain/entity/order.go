package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  nil,
	OrderStatusCancelled:  nil,
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// PaymentStatusPending is the payment state of every new order. Payment
// capture happens outside the marketplace.
const PaymentStatusPending = "pending"

// Order is a placed checkout. Only Status and UpdatedAt change after creation.
type Order struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	OrderNumber      string
	TotalAmount      decimal.Decimal
	CommissionAmount decimal.Decimal
	DeliveryFee      decimal.Decimal
	DeliveryAddress  string
	DeliveryPhone    string
	Notes            string
	PaymentMethod    string
	PaymentStatus    string
	Status           OrderStatus
	Items            []*OrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TransitionTo moves the order to next or returns a *TransitionError.
func (o *Order) TransitionTo(next OrderStatus, at time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return &TransitionError{From: string(o.Status), To: string(next)}
	}

	o.Status = next
	o.UpdatedAt = at

	return nil
}

// Subtotal is the order total without the delivery fee.
func (o *Order) Subtotal() decimal.Decimal {
	return o.TotalAmount.Sub(o.DeliveryFee)
}

// OrderItem is a purchased line. Price, rate and the split are captured at
// purchase time and never recomputed.
type OrderItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ProductID        uuid.UUID
	VendorID         uuid.UUID
	ProductName      string
	Quantity         int
	Price            decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	VendorAmount     decimal.Decimal
	CreatedAt        time.Time
}

// Subtotal returns price x quantity.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// VendorOrderItem is an order line seen from the selling vendor's side.
type VendorOrderItem struct {
	Item        *OrderItem
	OrderNumber string
	OrderStatus OrderStatus
	OrderedAt   time.Time
}
