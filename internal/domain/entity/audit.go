package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction names the kind of administrative change recorded.
type AuditAction string

const (
	AuditVendorApproval      AuditAction = "vendor_approval"
	AuditVendorRejection     AuditAction = "vendor_rejection"
	AuditVendorSuspension    AuditAction = "vendor_suspension"
	AuditCommissionUpdate    AuditAction = "commission_update"
	AuditProductDeactivation AuditAction = "product_deactivation"
	AuditOrderStatusUpdate   AuditAction = "order_status_update"
)

// AuditRecord is one entry of the admin action log. It is written in the
// same transaction as the change it describes.
type AuditRecord struct {
	ID          uuid.UUID
	ActorID     uuid.UUID
	Action      AuditAction
	TargetID    uuid.UUID
	Description string
	CreatedAt   time.Time
}
