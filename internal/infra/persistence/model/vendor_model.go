package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorModel mirrors the 'vendors' table. A user owns at most one vendor account.
type VendorModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName    string          `gorm:"type:varchar(255);not null"`
	BusinessEmail   string          `gorm:"type:varchar(255)"`
	BusinessPhone   string          `gorm:"type:varchar(50)"`
	BusinessAddress string          `gorm:"type:text"`
	BankName        string          `gorm:"type:varchar(100)"`
	AccountNumber   string          `gorm:"type:varchar(50)"`
	AccountName     string          `gorm:"type:varchar(255)"`
	Status          string          `gorm:"type:varchar(20);not null;default:pending;index"`
	CommissionRate  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	TotalSales      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CurrentBalance  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorModel) TableName() string {
	return "vendors"
}
