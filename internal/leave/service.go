package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, r *leaveDatamodel.Request) error
	GetByID(ctx context.Context, id int64) (*leaveDatamodel.Request, error)
	List(ctx context.Context, filter ListFilter) ([]leaveDatamodel.RequestWithEmployee, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo              Repository
	publisher         EventPublisher
	clock             *clock.Clock
	strictTransitions bool
	logger            *slog.Logger
}

// NewService builds the request service. With strictTransitions only
// pending requests can be approved or rejected; otherwise any known status
// can be set at any time.
func NewService(repo Repository, publisher EventPublisher, clk *clock.Clock, strictTransitions bool, logger *slog.Logger) *Service {
	return &Service{
		repo:              repo,
		publisher:         publisher,
		clock:             clk,
		strictTransitions: strictTransitions,
		logger:            logger,
	}
}

func (s *Service) SubmitRequest(ctx context.Context, dto SubmitRequestDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	row := &leaveDatamodel.Request{
		EmployeeID:  dto.EmployeeID,
		RequestType: dto.RequestType,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Reason:      dto.Reason,
		Status:      StatusPending,
		SubmittedOn: s.clock.Today(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to submit request", "employee_id", dto.EmployeeID, "error", err)
		return 0, fmt.Errorf("failed to submit request: %w", err)
	}

	s.logger.Info("request submitted", "request_id", row.ID, "employee_id", row.EmployeeID, "type", row.RequestType)
	s.publish(ctx, events.NewRequestSubmittedEvent(row.EmployeeID, row.ID, row.RequestType, row.StartDate, row.EndDate, s.clock.Now()))
	return row.ID, nil
}

func (s *Service) ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	out := make([]*Request, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}
	if current == nil {
		return ErrNotFound
	}
	if s.strictTransitions && !CanTransition(current.Status, dto.Status) {
		s.logger.Warn("request transition refused", "request_id", id, "from", current.Status, "to", dto.Status)
		return ErrInvalidTransition
	}

	found, err := s.repo.UpdateStatus(ctx, id, dto.Status)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.logger.Info("request status changed", "request_id", id, "from", current.Status, "to", dto.Status)
	s.publish(ctx, events.NewRequestStatusChangedEvent(current.EmployeeID, id, current.Status, dto.Status, s.clock.Now()))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
