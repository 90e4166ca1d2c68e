package user

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

// User is an account as returned by the admin API, without its password hash.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	AccessLevel string     `json:"accessLevel"`
	EmployeeID  *int64     `json:"employeeId"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	FirstName   *string    `json:"firstName,omitempty"`
	LastName    *string    `json:"lastName,omitempty"`
	BadgeNumber *string    `json:"badgeNumber,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

var (
	ErrNotFound          = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	ErrDuplicateUsername = internal.NewDuplicateError("Username already exists", internal.ErrCodeDuplicateUsername)
)

func FromDataModel(row *userDatamodel.UserWithEmployee) *User {
	return &User{
		ID:          row.ID,
		Username:    row.Username,
		AccessLevel: row.AccessLevel,
		EmployeeID:  row.EmployeeID,
		LastLoginAt: row.LastLoginAt,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		BadgeNumber: row.BadgeNumber,
		CreatedAt:   row.CreatedAt,
	}
}
