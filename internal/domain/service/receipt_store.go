package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrReceiptNotFound is returned when no receipt has been stored under a key.
var ErrReceiptNotFound = errors.New("receipt not found")

// ReceiptStore caches rendered receipt images.
type ReceiptStore interface {
	// Get returns the stored image or ErrReceiptNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores an image under key.
	Put(ctx context.Context, key string, data []byte, contentType string) error
}
