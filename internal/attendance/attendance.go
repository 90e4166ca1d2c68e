package attendance

import (
	"github.com/frahmantamala/attendance-management/internal"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
)

const (
	CategoryPresence = "Presenza"
	StatusApproved   = "Approvata"
)

var (
	ErrDuplicateEntry = internal.NewDuplicateError("Attendance already recorded for today", internal.ErrCodeDuplicateEntry)
	ErrNoOpenEntry    = internal.NewValidationError("No open clock-in found for today", internal.ErrCodeNoOpenEntry)
)

type Record struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employeeId"`
	Date         string  `json:"date"`
	EntranceTime *string `json:"entranceTime"`
	ExitTime     *string `json:"exitTime"`
	Category     string  `json:"category"`
	Note         *string `json:"note"`
	Status       string  `json:"status"`
}

// TodayEntry is a record of the current day with the employee identity.
type TodayEntry struct {
	Record
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	BadgeNumber string `json:"badgeNumber"`
}

// EmployeeStatistics aggregates one active employee over a period.
// AverageHours is nil when no record has both times set.
type EmployeeStatistics struct {
	EmployeeID   int64    `json:"employeeId"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	BadgeNumber  string   `json:"badgeNumber"`
	PresenceDays int      `json:"presenceDays"`
	AbsenceDays  int      `json:"absenceDays"`
	AverageHours *float64 `json:"averageHours"`
}

type ClockInResult struct {
	RecordID     int64  `json:"recordId"`
	EntranceTime string `json:"entranceTime"`
}

type ClockOutResult struct {
	RecordID int64  `json:"recordId"`
	ExitTime string `json:"exitTime"`
}

func FromDataModel(row *attendanceDatamodel.Record) Record {
	return Record{
		ID:           row.ID,
		EmployeeID:   row.EmployeeID,
		Date:         row.Date,
		EntranceTime: row.EntranceTime,
		ExitTime:     row.ExitTime,
		Category:     row.Category,
		Note:         row.Note,
		Status:       row.Status,
	}
}
