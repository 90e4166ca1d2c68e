package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/core/events"
)

// Repository lookups return nil, nil when nothing matches.
type Repository interface {
	FindPresence(ctx context.Context, employeeID int64, date string) (*attendanceDatamodel.Record, error)
	FindOpenPresence(ctx context.Context, employeeID int64, date string) (*attendanceDatamodel.Record, error)
	Create(ctx context.Context, record *attendanceDatamodel.Record) error
	SetExitTime(ctx context.Context, id int64, exitTime string) error
	ListByDate(ctx context.Context, date string) ([]attendanceDatamodel.RecordWithEmployee, error)
	ListByEmployee(ctx context.Context, employeeID int64, period *Period) ([]attendanceDatamodel.Record, error)
	ListInPeriod(ctx context.Context, period Period) ([]attendanceDatamodel.Record, error)
	ListActiveEmployees(ctx context.Context) ([]employeeDatamodel.Employee, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	publisher EventPublisher
	clock     *clock.Clock
	logger    *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, clk *clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
	}
}

// ClockIn opens today's Presence record. The unique index on
// (employee, date, category) settles concurrent clock-ins; the lookup
// before the insert only gives the common case a clean error.
func (s *Service) ClockIn(ctx context.Context, dto ClockDTO) (*ClockInResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := now.Format(clock.DateLayout)

	existing, err := s.repo.FindPresence(ctx, dto.EmployeeID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEntry
	}

	entrance := now.Format(clock.TimeLayout)
	record := &attendanceDatamodel.Record{
		EmployeeID:   dto.EmployeeID,
		Date:         today,
		Category:     CategoryPresence,
		EntranceTime: &entrance,
		Status:       StatusApproved,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if datamodel.IsDuplicateKey(err) {
			return nil, ErrDuplicateEntry
		}
		s.logger.Error("failed to record clock-in", "employee_id", dto.EmployeeID, "error", err)
		return nil, fmt.Errorf("failed to record clock-in: %w", err)
	}

	s.logger.Info("clock-in recorded", "employee_id", dto.EmployeeID, "record_id", record.ID, "entrance_time", entrance)
	s.publish(ctx, events.NewClockedInEvent(dto.EmployeeID, record.ID, today, entrance, now))

	return &ClockInResult{RecordID: record.ID, EntranceTime: entrance}, nil
}

func (s *Service) ClockOut(ctx context.Context, dto ClockDTO) (*ClockOutResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := now.Format(clock.DateLayout)

	open, err := s.repo.FindOpenPresence(ctx, dto.EmployeeID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to find open clock-in: %w", err)
	}
	if open == nil {
		return nil, ErrNoOpenEntry
	}

	exit := now.Format(clock.TimeLayout)
	if err := s.repo.SetExitTime(ctx, open.ID, exit); err != nil {
		s.logger.Error("failed to record clock-out", "employee_id", dto.EmployeeID, "record_id", open.ID, "error", err)
		return nil, fmt.Errorf("failed to record clock-out: %w", err)
	}

	s.logger.Info("clock-out recorded", "employee_id", dto.EmployeeID, "record_id", open.ID, "exit_time", exit)
	s.publish(ctx, events.NewClockedOutEvent(dto.EmployeeID, open.ID, today, exit, now))

	return &ClockOutResult{RecordID: open.ID, ExitTime: exit}, nil
}

func (s *Service) ListToday(ctx context.Context) ([]TodayEntry, error) {
	rows, err := s.repo.ListByDate(ctx, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}

	entries := make([]TodayEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, TodayEntry{
			Record:      FromDataModel(&rows[i].Record),
			FirstName:   rows[i].FirstName,
			LastName:    rows[i].LastName,
			BadgeNumber: rows[i].BadgeNumber,
		})
	}
	return entries, nil
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID int64, filter MonthFilter) ([]Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var period *Period
	if filter.IsSet() {
		p := filter.Range(s.clock)
		period = &p
	}

	rows, err := s.repo.ListByEmployee(ctx, employeeID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i := range rows {
		records = append(records, FromDataModel(&rows[i]))
	}
	return records, nil
}

// MonthlyStatistics reports every active employee, including those
// without records in the period.
func (s *Service) MonthlyStatistics(ctx context.Context, filter MonthFilter) (Period, []*EmployeeStatistics, error) {
	if err := filter.Validate(); err != nil {
		return Period{}, nil, err
	}
	period := filter.Range(s.clock)

	employees, err := s.repo.ListActiveEmployees(ctx)
	if err != nil {
		return period, nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	records, err := s.repo.ListInPeriod(ctx, period)
	if err != nil {
		return period, nil, fmt.Errorf("failed to list attendance for %s: %w", period, err)
	}

	type accumulator struct {
		stats *EmployeeStatistics
		hours float64
		spans int
	}

	out := make([]*EmployeeStatistics, 0, len(employees))
	byEmployee := make(map[int64]*accumulator, len(employees))
	for _, e := range employees {
		acc := &accumulator{stats: &EmployeeStatistics{
			EmployeeID:  e.ID,
			FirstName:   e.FirstName,
			LastName:    e.LastName,
			BadgeNumber: e.BadgeNumber,
		}}
		byEmployee[e.ID] = acc
		out = append(out, acc.stats)
	}

	for _, r := range records {
		acc, ok := byEmployee[r.EmployeeID]
		if !ok {
			continue
		}
		if r.Category == CategoryPresence {
			acc.stats.PresenceDays++
		} else {
			acc.stats.AbsenceDays++
		}

		if r.EntranceTime == nil || r.ExitTime == nil {
			continue
		}
		hours, err := clock.HoursBetween(*r.EntranceTime, *r.ExitTime)
		if err != nil {
			s.logger.Warn("skipping malformed attendance times", "record_id", r.ID, "error", err)
			continue
		}
		acc.hours += hours
		acc.spans++
	}

	for _, acc := range byEmployee {
		if acc.spans > 0 {
			avg := acc.hours / float64(acc.spans)
			acc.stats.AverageHours = &avg
		}
	}

	return period, out, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
