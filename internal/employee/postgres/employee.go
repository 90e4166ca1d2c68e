package postgres

import (
	"context"

	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) CreateWithAccount(ctx context.Context, e *employeeDatamodel.Employee, account *userDatamodel.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}

		account.EmployeeID = &e.ID
		if err := tx.Create(account).Error; err != nil {
			return &employee.LinkedAccountError{Err: err}
		}
		return nil
	})
}

func (r *EmployeeRepository) List(ctx context.Context) ([]employeeDatamodel.Employee, error) {
	var rows []employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Order("first_name ASC").
		Order("last_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *EmployeeRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Updates(changes)
	return res.RowsAffected > 0, res.Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&employeeDatamodel.Employee{}, id)
	return res.RowsAffected > 0, res.Error
}
