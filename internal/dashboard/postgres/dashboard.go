package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/jmoiron/sqlx"
)

// statsQuery folds the four counters into one round trip. Placeholders are
// rebound per driver.
const statsQuery = `
SELECT
  (SELECT COUNT(*) FROM attendance_records WHERE date = ? AND category = ?) AS today_count,
  (SELECT COUNT(*) FROM employees WHERE active = ?) AS active_employees,
  (SELECT COUNT(*) FROM leave_requests WHERE status = ?) AS pending_requests,
  (SELECT COUNT(*) FROM attendance_records WHERE date = ? AND category = ? AND exit_time IS NULL) AS still_present
`

type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Stats(ctx context.Context, today string) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	err := r.db.GetContext(ctx, &stats, r.db.Rebind(statsQuery),
		today, attendance.CategoryPresence,
		true,
		leave.StatusPending,
		today, attendance.CategoryPresence,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats query: %w", err)
	}
	return &stats, nil
}
