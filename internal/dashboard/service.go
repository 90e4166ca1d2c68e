package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
)

type Repository interface {
	Stats(ctx context.Context, today string) (*Stats, error)
}

type Service struct {
	repo   Repository
	clock  *clock.Clock
	logger *slog.Logger
}

func NewService(repo Repository, clk *clock.Clock, logger *slog.Logger) *Service {
	return &Service{repo: repo, clock: clk, logger: logger}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	today := s.clock.Today()
	stats, err := s.repo.Stats(ctx, today)
	if err != nil {
		s.logger.Error("failed to compute dashboard stats", "date", today, "error", err)
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
