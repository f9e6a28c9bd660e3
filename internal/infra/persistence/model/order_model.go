package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Items are removed with their order.
type OrderModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderNumber      string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DeliveryFee      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DeliveryAddress  string          `gorm:"type:text;not null"`
	DeliveryPhone    string          `gorm:"type:varchar(50);not null"`
	Notes            string          `gorm:"type:text"`
	PaymentMethod    string          `gorm:"type:varchar(50)"`
	PaymentStatus    string          `gorm:"type:varchar(20);not null;default:pending"`
	Status           string          `gorm:"type:varchar(20);not null;default:pending;index"`
	CreatedAt        time.Time       `gorm:"index"`
	UpdatedAt        time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Every money column is frozen at purchase time.
type OrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(255);not null"`
	Quantity         int             `gorm:"not null"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VendorAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
