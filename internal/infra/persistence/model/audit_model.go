package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminActionModel mirrors the 'admin_actions' table.
type AdminActionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ActionType  string    `gorm:"type:varchar(50);not null"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (AdminActionModel) TableName() string {
	return "admin_actions"
}
