package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseReceipt records a checkout session that was verified as paid.
// SessionID carries a unique index so re-resolving the same session is idempotent.
type PurchaseReceipt struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SessionID   string    `gorm:"column:session_id;uniqueIndex;not null"`
	ProductSlug string    `gorm:"column:product_slug;not null"`
	Title       string    `gorm:"column:title;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PurchaseReceipt) TableName() string {
	return "purchase_receipts"
}
