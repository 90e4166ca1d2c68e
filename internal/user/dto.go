package user

import (
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
)

type CreateUserDTO struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccessLevel string `json:"accessLevel"`
	EmployeeID  *int64 `json:"employeeId,omitempty"`
}

// UpdateUserDTO replaces username, access level and employee link. The
// password changes only when one is given.
type UpdateUserDTO struct {
	Username    string  `json:"username"`
	AccessLevel string  `json:"accessLevel"`
	EmployeeID  *int64  `json:"employeeId,omitempty"`
	Password    *string `json:"password,omitempty"`
}

func (d CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(64)
	v.Field("password", d.Password).Required()
	v.Field("accessLevel", d.AccessLevel).Required().OneOf(coreuser.AccessLevels()...)
	return v.Validate()
}

func (d UpdateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(64)
	v.Field("accessLevel", d.AccessLevel).Required().OneOf(coreuser.AccessLevels()...)
	return v.Validate()
}

func (d UpdateUserDTO) passwordChange() (string, bool) {
	if d.Password == nil || strings.TrimSpace(*d.Password) == "" {
		return "", false
	}
	return *d.Password, true
}
