package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeClockedIn            = "attendance.clocked_in"
	EventTypeClockedOut           = "attendance.clocked_out"
	EventTypeRequestSubmitted     = "request.submitted"
	EventTypeRequestStatusChanged = "request.status_changed"
	EventTypeEmployeeCreated      = "employee.created"
)

// AuditedEventTypes lists the events persisted by the activity log.
func AuditedEventTypes() []string {
	return []string{
		EventTypeClockedIn,
		EventTypeClockedOut,
		EventTypeRequestSubmitted,
		EventTypeRequestStatusChanged,
		EventTypeEmployeeCreated,
	}
}

func newEmployeeEvent(eventType string, employeeID int64, at time.Time, data map[string]interface{}) BaseEvent {
	id := employeeID
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Timestamp:  at,
		EmployeeID: &id,
		Data:       data,
	}
}

func NewClockedInEvent(employeeID, recordID int64, date, entranceTime string, at time.Time) BaseEvent {
	return newEmployeeEvent(EventTypeClockedIn, employeeID, at, map[string]interface{}{
		"record_id":     recordID,
		"date":          date,
		"entrance_time": entranceTime,
	})
}

func NewClockedOutEvent(employeeID, recordID int64, date, exitTime string, at time.Time) BaseEvent {
	return newEmployeeEvent(EventTypeClockedOut, employeeID, at, map[string]interface{}{
		"record_id": recordID,
		"date":      date,
		"exit_time": exitTime,
	})
}

func NewRequestSubmittedEvent(employeeID, requestID int64, requestType, startDate, endDate string, at time.Time) BaseEvent {
	return newEmployeeEvent(EventTypeRequestSubmitted, employeeID, at, map[string]interface{}{
		"request_id":   requestID,
		"request_type": requestType,
		"start_date":   startDate,
		"end_date":     endDate,
	})
}

func NewRequestStatusChangedEvent(employeeID, requestID int64, from, to string, at time.Time) BaseEvent {
	return newEmployeeEvent(EventTypeRequestStatusChanged, employeeID, at, map[string]interface{}{
		"request_id": requestID,
		"from":       from,
		"to":         to,
	})
}

func NewEmployeeCreatedEvent(employeeID int64, badgeNumber string, userID *int64, at time.Time) BaseEvent {
	data := map[string]interface{}{
		"badge_number": badgeNumber,
	}
	if userID != nil {
		data["user_id"] = *userID
	}
	return newEmployeeEvent(EventTypeEmployeeCreated, employeeID, at, data)
}
