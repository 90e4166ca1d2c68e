package postgres

import (
	"context"
	"errors"

	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) leave.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *leaveDatamodel.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*leaveDatamodel.Request, error) {
	var req leaveDatamodel.Request
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, filter leave.ListFilter) ([]leaveDatamodel.RequestWithEmployee, error) {
	query := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, employees.first_name, employees.last_name, employees.badge_number").
		Joins("JOIN employees ON employees.id = leave_requests.employee_id")
	if filter.Status != nil {
		query = query.Where("leave_requests.status = ?", *filter.Status)
	}
	if filter.EmployeeID != nil {
		query = query.Where("leave_requests.employee_id = ?", *filter.EmployeeID)
	}

	var rows []leaveDatamodel.RequestWithEmployee
	err := query.
		Order("leave_requests.submitted_on DESC").
		Order("leave_requests.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&leaveDatamodel.Request{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}
