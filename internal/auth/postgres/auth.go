package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

const userWithEmployeeSelect = `users.*, employees.first_name, employees.last_name, employees.badge_number, employees.job_role`

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.UserRepository {
	return &Repository{db: db}
}

func (r *Repository) find(ctx context.Context, where string, arg interface{}) (*userDatamodel.UserWithEmployee, error) {
	var rows []userDatamodel.UserWithEmployee
	err := r.db.WithContext(ctx).
		Table("users").
		Select(userWithEmployeeSelect).
		Joins("LEFT JOIN employees ON employees.id = users.employee_id").
		Where(where, arg).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*userDatamodel.UserWithEmployee, error) {
	return r.find(ctx, "users.username = ?", username)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*userDatamodel.UserWithEmployee, error) {
	return r.find(ctx, "users.id = ?", id)
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("last_login_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}
