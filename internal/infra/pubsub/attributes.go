package pubsub

import "marketplace/internal/domain/service"

// eventAttributes are the message attributes shared by every provider, used
// for subscription filtering and tracing.
func eventAttributes(event *service.MarketplaceEvent) map[string]string {
	attributes := map[string]string{
		"event_type":   string(event.Type),
		"aggregate_id": event.AggregateID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
