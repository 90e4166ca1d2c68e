package shift

import (
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

type CreateShiftDTO struct {
	EmployeeID int64   `json:"employeeId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	ShiftType  string  `json:"shiftType,omitempty"`
	Note       *string `json:"note,omitempty"`
}

func (d CreateShiftDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("date", d.Date).Required().Date()
	v.Field("startTime", d.StartTime).Required().TimeOfDay()
	v.Field("endTime", d.EndTime).Required().TimeOfDay()
	v.Field("shiftType", d.ShiftType).MaxLength(32)
	return v.Validate()
}

func (d CreateShiftDTO) shiftType() string {
	if t := strings.TrimSpace(d.ShiftType); t != "" {
		return t
	}
	return DefaultType
}

// ListFilter selects shifts of one date or of one employee. Date wins when
// both are set; with neither every shift is listed.
type ListFilter struct {
	Date       string
	EmployeeID *int64
}

func (f ListFilter) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("date", f.Date).Date()
	return v.Validate()
}
