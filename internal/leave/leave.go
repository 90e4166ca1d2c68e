package leave

import (
	"github.com/frahmantamala/attendance-management/internal"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
)

const (
	StatusPending  = "In attesa"
	StatusApproved = "Approvata"
	StatusRejected = "Rifiutata"
)

var (
	ErrNotFound          = internal.NewNotFoundError("Request not found", internal.ErrCodeRequestNotFound)
	ErrInvalidTransition = internal.NewConflictError("Request status cannot change from its current state", internal.ErrCodeInvalidTransition)
)

func Statuses() []string {
	return []string{StatusPending, StatusApproved, StatusRejected}
}

// CanTransition reports whether the workflow allows from -> to. Only
// pending requests may be decided, and decisions are final.
func CanTransition(from, to string) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}

type Request struct {
	ID          int64   `json:"id"`
	EmployeeID  int64   `json:"employeeId"`
	RequestType string  `json:"requestType"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Reason      *string `json:"reason"`
	Status      string  `json:"status"`
	SubmittedOn string  `json:"submittedOn"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	BadgeNumber string  `json:"badgeNumber"`
}

func FromDataModel(row *leaveDatamodel.RequestWithEmployee) *Request {
	return &Request{
		ID:          row.ID,
		EmployeeID:  row.EmployeeID,
		RequestType: row.RequestType,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Reason:      row.Reason,
		Status:      row.Status,
		SubmittedOn: row.SubmittedOn,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		BadgeNumber: row.BadgeNumber,
	}
}
