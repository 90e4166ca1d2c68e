package postgres

import (
	"context"

	shiftDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/shift"
	"github.com/frahmantamala/attendance-management/internal/shift"
	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, s *shiftDatamodel.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShiftRepository) ListByDate(ctx context.Context, date string) ([]shiftDatamodel.ShiftWithEmployee, error) {
	return r.list(r.joined(ctx).Where("shifts.date = ?", date))
}

func (r *ShiftRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]shiftDatamodel.ShiftWithEmployee, error) {
	return r.list(r.joined(ctx).Where("shifts.employee_id = ?", employeeID))
}

func (r *ShiftRepository) List(ctx context.Context) ([]shiftDatamodel.ShiftWithEmployee, error) {
	return r.list(r.joined(ctx))
}

func (r *ShiftRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("shifts").
		Select("shifts.*, employees.first_name, employees.last_name, employees.badge_number").
		Joins("JOIN employees ON employees.id = shifts.employee_id")
}

func (r *ShiftRepository) list(query *gorm.DB) ([]shiftDatamodel.ShiftWithEmployee, error) {
	var rows []shiftDatamodel.ShiftWithEmployee
	err := query.
		Order("shifts.date DESC").
		Order("shifts.start_time ASC").
		Scan(&rows).Error
	return rows, err
}
