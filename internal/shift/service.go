package shift

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
	shiftDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/shift"
)

type Repository interface {
	Create(ctx context.Context, s *shiftDatamodel.Shift) error
	ListByDate(ctx context.Context, date string) ([]shiftDatamodel.ShiftWithEmployee, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]shiftDatamodel.ShiftWithEmployee, error)
	List(ctx context.Context) ([]shiftDatamodel.ShiftWithEmployee, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateShift stores a planned shift. Overlapping shifts are allowed.
func (s *Service) CreateShift(ctx context.Context, dto CreateShiftDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	start, _ := clock.NormalizeTimeOfDay(dto.StartTime)
	end, _ := clock.NormalizeTimeOfDay(dto.EndTime)
	row := &shiftDatamodel.Shift{
		EmployeeID: dto.EmployeeID,
		Date:       dto.Date,
		StartTime:  start,
		EndTime:    end,
		ShiftType:  dto.shiftType(),
		Note:       dto.Note,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create shift", "employee_id", dto.EmployeeID, "date", dto.Date, "error", err)
		return 0, fmt.Errorf("failed to create shift: %w", err)
	}

	s.logger.Info("shift created", "shift_id", row.ID, "employee_id", row.EmployeeID, "date", row.Date)
	return row.ID, nil
}

func (s *Service) ListShifts(ctx context.Context, filter ListFilter) ([]*Shift, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var (
		rows []shiftDatamodel.ShiftWithEmployee
		err  error
	)
	switch {
	case filter.Date != "":
		rows, err = s.repo.ListByDate(ctx, filter.Date)
	case filter.EmployeeID != nil:
		rows, err = s.repo.ListByEmployee(ctx, *filter.EmployeeID)
	default:
		rows, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	out := make([]*Shift, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}
