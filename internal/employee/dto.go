package employee

import (
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
)

// CreateEmployeeDTO creates an employee and, unless CreateAccount is
// false, a linked Employee-level account named after the badge number.
type CreateEmployeeDTO struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	BadgeNumber   string  `json:"badgeNumber"`
	JobRole       string  `json:"jobRole"`
	HireDate      string  `json:"hireDate"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Department    *string `json:"department,omitempty"`
	CreateAccount *bool   `json:"createAccount,omitempty"`
}

type UpdateEmployeeDTO struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	BadgeNumber string  `json:"badgeNumber"`
	JobRole     string  `json:"jobRole"`
	HireDate    string  `json:"hireDate"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Department  *string `json:"department,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func validateIdentity(firstName, lastName, badge, role, hireDate, email string) *internal.AppError {
	v := validation.NewValidator()
	v.Field("firstName", firstName).Required().MaxLength(100)
	v.Field("lastName", lastName).Required().MaxLength(100)
	v.Field("badgeNumber", badge).Required().MaxLength(32)
	v.Field("jobRole", role).Required().MaxLength(100)
	v.Field("hireDate", hireDate).Required().Date()
	v.Field("email", email).Required().Email()
	return v.Validate()
}

func (d CreateEmployeeDTO) Validate() *internal.AppError {
	return validateIdentity(d.FirstName, d.LastName, d.BadgeNumber, d.JobRole, d.HireDate, d.Email)
}

func (d UpdateEmployeeDTO) Validate() *internal.AppError {
	return validateIdentity(d.FirstName, d.LastName, d.BadgeNumber, d.JobRole, d.HireDate, d.Email)
}

func (d CreateEmployeeDTO) wantsAccount() bool {
	return d.CreateAccount == nil || *d.CreateAccount
}

func (d CreateEmployeeDTO) toDataModel() *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		FirstName:   strings.TrimSpace(d.FirstName),
		LastName:    strings.TrimSpace(d.LastName),
		BadgeNumber: strings.TrimSpace(d.BadgeNumber),
		JobRole:     strings.TrimSpace(d.JobRole),
		HireDate:    d.HireDate,
		Email:       strings.TrimSpace(d.Email),
		Phone:       blankToNil(d.Phone),
		Department:  blankToNil(d.Department),
		Active:      true,
	}
}

func (d UpdateEmployeeDTO) changes() map[string]interface{} {
	changes := map[string]interface{}{
		"first_name":   strings.TrimSpace(d.FirstName),
		"last_name":    strings.TrimSpace(d.LastName),
		"badge_number": strings.TrimSpace(d.BadgeNumber),
		"job_role":     strings.TrimSpace(d.JobRole),
		"hire_date":    d.HireDate,
		"email":        strings.TrimSpace(d.Email),
		"phone":        blankToNil(d.Phone),
		"department":   blankToNil(d.Department),
	}
	if d.Active != nil {
		changes["active"] = *d.Active
	}
	return changes
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
