package service

import (
	"context"
	"encoding/json"
	"time"
)

// EventType names a marketplace event.
type EventType string

const (
	EventOrderPlaced         EventType = "order.placed"
	EventOrderStatusChanged  EventType = "order.status_changed"
	EventVendorStatusChanged EventType = "vendor.status_changed"
	EventWithdrawalRequested EventType = "vendor.withdrawal_requested"
)

// MarketplaceEvent is the envelope published after a committed state change.
type MarketplaceEvent struct {
	Type        EventType       `json:"type"`
	RequestID   string          `json:"request_id,omitempty"` // For distributed tracing
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// OrderPlacedPayload is the payload of EventOrderPlaced.
type OrderPlacedPayload struct {
	OrderID     string   `json:"order_id"`
	OrderNumber string   `json:"order_number"`
	CustomerID  string   `json:"customer_id"`
	TotalAmount string   `json:"total_amount"`
	ProductIDs  []string `json:"product_ids"`
	VendorIDs   []string `json:"vendor_ids"`
}

// StatusChangedPayload is the payload of the status change events.
type StatusChangedPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// WithdrawalRequestedPayload is the payload of EventWithdrawalRequested.
type WithdrawalRequestedPayload struct {
	RequestID string `json:"withdrawal_id"`
	VendorID  string `json:"vendor_id"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
}

// NewMarketplaceEvent builds an event, encoding payload as JSON.
func NewMarketplaceEvent(eventType EventType, aggregateID string, payload any) (*MarketplaceEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &MarketplaceEvent{
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     raw,
	}, nil
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends an event for async processing
	Publish(ctx context.Context, event *MarketplaceEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
