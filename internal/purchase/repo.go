package purchase

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gruppopolinex/polinex-backend/pkg/db/models"
)

// ReceiptRepository records verified purchases.
type ReceiptRepository interface {
	Record(ctx context.Context, receipt *models.PurchaseReceipt) error
}

type repository struct {
	conn *gorm.DB
}

// NewRepository builds a GORM-backed receipt repository.
func NewRepository(conn *gorm.DB) ReceiptRepository {
	return &repository{conn: conn}
}

// Record inserts the receipt. A session already recorded is left untouched,
// so re-resolving the same session stays idempotent.
func (r *repository) Record(ctx context.Context, receipt *models.PurchaseReceipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	return r.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(receipt).Error
}
