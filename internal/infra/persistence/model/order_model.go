package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Line items live in their own table
// as point-in-time snapshots; there is no FK from lines to products so a
// deleted product cannot invalidate historical orders.
type OrderModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName string           `gorm:"type:varchar(255)"`
	Lines        []OrderLineModel `gorm:"foreignKey:OrderID"`
	TotalCost    float64          `gorm:"not null"`
	Status       string           `gorm:"type:varchar(50);not null;default:'POSTED'"`
	OrderedAt    time.Time        `gorm:"autoCreateTime"`
	CompletedAt  *time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table.
type OrderLineModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Cost      float64   `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
