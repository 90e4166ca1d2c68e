package activity

import (
	"encoding/json"
	"time"

	activityDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/activity"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Entry struct {
	ID         int64           `json:"id"`
	EventID    string          `json:"eventId"`
	EventType  string          `json:"eventType"`
	EmployeeID *int64          `json:"employeeId"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func FromDataModel(row *activityDatamodel.Entry) *Entry {
	payload := json.RawMessage(row.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return &Entry{
		ID:         row.ID,
		EventID:    row.EventID,
		EventType:  row.EventType,
		EmployeeID: row.EmployeeID,
		Payload:    payload,
		OccurredAt: row.OccurredAt,
	}
}

// ClampLimit maps a missing or out of range limit onto [1, MaxLimit].
func ClampLimit(limit *int) int {
	switch {
	case limit == nil || *limit <= 0:
		return DefaultLimit
	case *limit > MaxLimit:
		return MaxLimit
	}
	return *limit
}
