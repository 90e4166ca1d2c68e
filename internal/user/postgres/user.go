package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDatamodel.UserWithEmployee, error) {
	var rows []userDatamodel.UserWithEmployee
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, employees.first_name, employees.last_name, employees.badge_number, employees.job_role").
		Joins("LEFT JOIN employees ON employees.id = users.employee_id").
		Order("users.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *UserRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(changes)
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&userDatamodel.User{}, id)
	return res.RowsAffected > 0, res.Error
}
