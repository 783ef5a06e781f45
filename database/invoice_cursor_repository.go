package database

import (
	"context"
	"errors"

	"github.com/40acres/walletconsole/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceCursorRepository stores the pay index of the last invoice delivered
// for one Lightning node.
type InvoiceCursorRepository struct {
	orm    *gorm.DB
	nodeID string
}

func (d *Database) InvoiceCursors(nodeID string) *InvoiceCursorRepository {
	return &InvoiceCursorRepository{orm: d.orm, nodeID: nodeID}
}

func (r *InvoiceCursorRepository) LoadCursor(ctx context.Context) (uint64, bool, error) {
	var cursor models.InvoiceCursor
	err := r.orm.WithContext(ctx).
		Where("node_id = ?", r.nodeID).
		First(&cursor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return cursor.PayIndex, true, nil
}

func (r *InvoiceCursorRepository) SaveCursor(ctx context.Context, payIndex uint64) error {
	cursor := models.InvoiceCursor{NodeID: r.nodeID, PayIndex: payIndex}

	return r.orm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "node_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"pay_index", "updated_at"}),
		}).
		Create(&cursor).Error
}
