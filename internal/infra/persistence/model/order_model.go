package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Amounts are stored as
// decimal(10,2) to keep money exact. UserID is nullable for guest checkouts.
type OrderModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      *uuid.UUID      `gorm:"type:uuid;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentID   string          `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is the unit price
// captured at purchase time, not a live lookup.
type OrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomizedBookID uuid.UUID       `gorm:"type:uuid;not null"`
	Format           string          `gorm:"type:varchar(20);not null;default:'digital'"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity         int             `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Book *CustomizedBookModel `gorm:"foreignKey:CustomizedBookID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
