package shift

import shiftDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/shift"

const DefaultType = "Standard"

type Shift struct {
	ID          int64   `json:"id"`
	EmployeeID  int64   `json:"employeeId"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	ShiftType   string  `json:"shiftType"`
	Note        *string `json:"note"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	BadgeNumber string  `json:"badgeNumber"`
}

func FromDataModel(row *shiftDatamodel.ShiftWithEmployee) *Shift {
	return &Shift{
		ID:          row.ID,
		EmployeeID:  row.EmployeeID,
		Date:        row.Date,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		ShiftType:   row.ShiftType,
		Note:        row.Note,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		BadgeNumber: row.BadgeNumber,
	}
}
