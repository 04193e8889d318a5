package model

import (
	"time"

	"github.com/google/uuid"
)

// StockEntryModel mirrors the 'stock_entries' ledger table. Rows are only
// ever inserted; there is no update path anywhere in the codebase.
type StockEntryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Delta       int       `gorm:"not null"`
	Total       int       `gorm:"not null"`
	RecordedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (StockEntryModel) TableName() string {
	return "stock_entries"
}
