package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	activityDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/activity"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"gorm.io/datatypes"
)

type Repository interface {
	// Record stores the entry and reports false when its event id is
	// already present.
	Record(ctx context.Context, e *activityDatamodel.Entry) (bool, error)
	Latest(ctx context.Context, limit int) ([]activityDatamodel.Entry, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterEventHandlers subscribes the log to every audited event type.
func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	for _, eventType := range events.AuditedEventTypes() {
		bus.Subscribe(eventType, s.HandleEvent)
	}
	s.logger.Info("activity log handlers registered", "handlers", events.AuditedEventTypes())
}

func (s *Service) HandleEvent(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("encode payload of %s: %w", event.EventID(), err)
	}

	row := &activityDatamodel.Entry{
		EventID:    event.EventID(),
		EventType:  event.EventType(),
		Payload:    datatypes.JSON(payload),
		OccurredAt: event.OccurredAt(),
	}
	if ee, ok := event.(events.EmployeeEvent); ok {
		row.EmployeeID = ee.EmployeeRef()
	}

	created, err := s.repo.Record(ctx, row)
	if err != nil {
		return fmt.Errorf("record event %s: %w", event.EventID(), err)
	}
	if !created {
		s.logger.Debug("event already recorded", "event_id", event.EventID())
	}
	return nil
}

func (s *Service) ListLatest(ctx context.Context, limit *int) ([]*Entry, error) {
	rows, err := s.repo.Latest(ctx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	out := make([]*Entry, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}
