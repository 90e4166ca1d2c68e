package postgres

import (
	"context"

	"github.com/frahmantamala/attendance-management/internal/activity"
	activityDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/activity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.Repository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Record(ctx context.Context, e *activityDatamodel.Entry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(e)
	return res.RowsAffected > 0, res.Error
}

func (r *ActivityRepository) Latest(ctx context.Context, limit int) ([]activityDatamodel.Entry, error) {
	var rows []activityDatamodel.Entry
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
