package employee

import (
	"errors"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
)

type Employee struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	BadgeNumber string  `json:"badgeNumber"`
	JobRole     string  `json:"jobRole"`
	HireDate    string  `json:"hireDate"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Active      bool    `json:"active"`
}

var (
	ErrNotFound       = internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
	ErrDuplicateValue = internal.NewDuplicateError("Badge number or email already exists", internal.ErrCodeDuplicateValue)
	// ErrLinkedUserFailed means the login account could not be created;
	// the employee insert was rolled back with it.
	ErrLinkedUserFailed = &internal.AppError{
		Type:       internal.ErrorTypeInternal,
		Code:       internal.ErrCodeLinkedUserFailed,
		Message:    "Employee not created: the linked user account could not be created",
		StatusCode: http.StatusInternalServerError,
	}
)

// LinkedAccountError wraps the failure of the account insert inside an
// employee creation transaction.
type LinkedAccountError struct {
	Err error
}

func (e *LinkedAccountError) Error() string {
	return "create linked account: " + e.Err.Error()
}

func (e *LinkedAccountError) Unwrap() error {
	return e.Err
}

func IsLinkedAccountError(err error) bool {
	var target *LinkedAccountError
	return errors.As(err, &target)
}

func FromDataModel(row *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		BadgeNumber: row.BadgeNumber,
		JobRole:     row.JobRole,
		HireDate:    row.HireDate,
		Email:       row.Email,
		Phone:       row.Phone,
		Department:  row.Department,
		Active:      row.Active,
	}
}
