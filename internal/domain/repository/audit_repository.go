package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

// AuditRepository persists the admin action log.
type AuditRepository interface {
	// Create appends a record.
	Create(ctx context.Context, record *entity.AuditRecord) error

	// List returns a page of records, newest first, and the total count.
	List(ctx context.Context, opts ListOptions) ([]*entity.AuditRecord, int64, error)
}
