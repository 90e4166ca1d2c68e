package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
)

// Repository persists employees. CreateWithAccount inserts the employee and
// its account atomically and reports a failed account insert as a
// *LinkedAccountError.
type Repository interface {
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	CreateWithAccount(ctx context.Context, e *employeeDatamodel.Employee, account *userDatamodel.User) error
	List(ctx context.Context) ([]employeeDatamodel.Employee, error)
	Update(ctx context.Context, id int64, changes map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo            Repository
	passwords       PasswordHasher
	publisher       EventPublisher
	clock           *clock.Clock
	defaultPassword string
	logger          *slog.Logger
}

func NewService(repo Repository, passwords PasswordHasher, publisher EventPublisher, clk *clock.Clock, defaultPassword string, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		passwords:       passwords,
		publisher:       publisher,
		clock:           clk,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// CreateResult names the new employee and, when one was created, its account.
type CreateResult struct {
	EmployeeID int64  `json:"employeeId"`
	UserID     *int64 `json:"userId,omitempty"`
}

func (s *Service) CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*CreateResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := dto.toDataModel()
	result := &CreateResult{}

	if dto.wantsAccount() {
		hash, err := s.passwords.Hash(s.defaultPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash default password: %w", err)
		}
		account := &userDatamodel.User{
			Username:     row.BadgeNumber,
			PasswordHash: hash,
			AccessLevel:  coreuser.AccessLevelEmployee,
		}

		if err := s.repo.CreateWithAccount(ctx, row, account); err != nil {
			return nil, s.createError(err, row)
		}
		result.UserID = &account.ID
	} else if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.createError(err, row)
	}
	result.EmployeeID = row.ID

	s.logger.Info("employee created", "employee_id", row.ID, "badge_number", row.BadgeNumber, "with_account", result.UserID != nil)

	if s.publisher != nil {
		event := events.NewEmployeeCreatedEvent(row.ID, row.BadgeNumber, result.UserID, s.clock.Now())
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish employee event", "employee_id", row.ID, "error", err)
		}
	}
	return result, nil
}

func (s *Service) createError(err error, row *employeeDatamodel.Employee) error {
	if IsLinkedAccountError(err) {
		s.logger.Error("linked account creation failed, employee rolled back", "badge_number", row.BadgeNumber, "error", err)
		return ErrLinkedUserFailed.WithCause(err)
	}
	if datamodel.IsDuplicateKey(err) {
		return ErrDuplicateValue
	}
	return fmt.Errorf("failed to create employee: %w", err)
}

func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	out := make([]*Employee, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, dto UpdateEmployeeDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	found, err := s.repo.Update(ctx, id, dto.changes())
	if err != nil {
		if datamodel.IsDuplicateKey(err) {
			return ErrDuplicateValue
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.logger.Info("employee updated", "employee_id", id)
	return nil
}

// DeleteEmployee removes the employee row only; records and accounts that
// reference it are left in place.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
