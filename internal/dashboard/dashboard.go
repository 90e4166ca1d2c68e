// Package dashboard computes the headline counters shown to managers.
package dashboard

// Stats is the snapshot for the current business day.
type Stats struct {
	TodayCount      int64 `json:"todayCount" db:"today_count"`
	ActiveEmployees int64 `json:"activeEmployees" db:"active_employees"`
	PendingRequests int64 `json:"pendingRequests" db:"pending_requests"`
	StillPresent    int64 `json:"stillPresent" db:"still_present"`
}
