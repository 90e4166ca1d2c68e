package leave

import (
	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

type SubmitRequestDTO struct {
	EmployeeID  int64   `json:"employeeId"`
	RequestType string  `json:"requestType"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Reason      *string `json:"reason,omitempty"`
}

func (d SubmitRequestDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("requestType", d.RequestType).Required().MaxLength(64)
	v.Field("startDate", d.StartDate).Required().Date()
	v.Field("endDate", d.EndDate).Required().Date()
	if err := v.Validate(); err != nil {
		return err
	}
	return validation.DateRange("startDate", d.StartDate, "endDate", d.EndDate)
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required().OneOf(Statuses()...)
	return v.Validate()
}

// ListFilter narrows the request list. Nil fields do not filter.
type ListFilter struct {
	Status     *string
	EmployeeID *int64
}
