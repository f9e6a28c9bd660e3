package service

import "time"

// OrderNumberGenerator produces human-readable order numbers.
type OrderNumberGenerator interface {
	// Next returns a candidate number for an order placed at the given time.
	// Uniqueness is enforced by storage; callers retry on collision.
	Next(at time.Time) string
}
