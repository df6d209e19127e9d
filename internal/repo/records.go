package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/foodcart/pkg/db/models"
)

// Records reads and writes rows of persisted_records.
type Records struct {
	Base
}

func NewRecords(db *gorm.DB) *Records {
	return &Records{Base: NewBase(db)}
}

// Find returns the record, or nil when it does not exist.
func (r *Records) Find(ctx context.Context, namespace, key string) (*models.PersistedRecord, error) {
	var rec models.PersistedRecord
	err := r.DB(ctx).
		Where("namespace = ? AND record_key = ?", namespace, key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert inserts rec or replaces the value of the existing row.
func (r *Records) Upsert(ctx context.Context, rec *models.PersistedRecord) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(rec).Error
}

// Delete removes the record; a missing record is not an error.
func (r *Records) Delete(ctx context.Context, namespace, key string) error {
	return r.DB(ctx).
		Where("namespace = ? AND record_key = ?", namespace, key).
		Delete(&models.PersistedRecord{}).Error
}

// Count returns how many records are stored across all namespaces.
func (r *Records) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.PersistedRecord{}).Count(&n).Error
	return n, err
}
