package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) first(query *gorm.DB) (*attendanceDatamodel.Record, error) {
	var rec attendanceDatamodel.Record
	err := query.First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) FindPresence(ctx context.Context, employeeID int64, date string) (*attendanceDatamodel.Record, error) {
	return r.first(r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND category = ?", employeeID, date, attendance.CategoryPresence))
}

func (r *AttendanceRepository) FindOpenPresence(ctx context.Context, employeeID int64, date string) (*attendanceDatamodel.Record, error) {
	return r.first(r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND category = ? AND exit_time IS NULL", employeeID, date, attendance.CategoryPresence).
		Order("entrance_time DESC").
		Order("id DESC"))
}

func (r *AttendanceRepository) Create(ctx context.Context, record *attendanceDatamodel.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *AttendanceRepository) SetExitTime(ctx context.Context, id int64, exitTime string) error {
	res := r.db.WithContext(ctx).
		Model(&attendanceDatamodel.Record{}).
		Where("id = ? AND exit_time IS NULL", id).
		Update("exit_time", exitTime)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendance.ErrNoOpenEntry
	}
	return nil
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]attendanceDatamodel.RecordWithEmployee, error) {
	var rows []attendanceDatamodel.RecordWithEmployee
	err := r.db.WithContext(ctx).
		Table("attendance_records").
		Select("attendance_records.*, employees.first_name, employees.last_name, employees.badge_number").
		Joins("JOIN employees ON employees.id = attendance_records.employee_id").
		Where("attendance_records.date = ?", date).
		Order("attendance_records.entrance_time DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID int64, period *attendance.Period) ([]attendanceDatamodel.Record, error) {
	query := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if period != nil {
		query = query.Where("date >= ? AND date <= ?", period.From, period.To)
	}

	var rows []attendanceDatamodel.Record
	err := query.
		Order("date DESC").
		Order("entrance_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *AttendanceRepository) ListInPeriod(ctx context.Context, period attendance.Period) ([]attendanceDatamodel.Record, error) {
	var rows []attendanceDatamodel.Record
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", period.From, period.To).
		Find(&rows).Error
	return rows, err
}

func (r *AttendanceRepository) ListActiveEmployees(ctx context.Context) ([]employeeDatamodel.Employee, error) {
	var rows []employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("first_name ASC").
		Order("last_name ASC").
		Find(&rows).Error
	return rows, err
}
