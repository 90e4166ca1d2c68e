package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/datamodel"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
)

// Repository persists accounts. Update and Delete report whether a row matched.
type Repository interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	List(ctx context.Context) ([]userDatamodel.UserWithEmployee, error)
	Update(ctx context.Context, id int64, changes map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo      Repository
	passwords PasswordHasher
	logger    *slog.Logger
}

func NewService(repo Repository, passwords PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		passwords: passwords,
		logger:    logger,
	}
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	hash, err := s.passwords.Hash(dto.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	row := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: hash,
		AccessLevel:  dto.AccessLevel,
		EmployeeID:   dto.EmployeeID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if datamodel.IsDuplicateKey(err) {
			return 0, ErrDuplicateUsername
		}
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "access_level", row.AccessLevel)
	return row.ID, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(rows))
	for i := range rows {
		users = append(users, FromDataModel(&rows[i]))
	}
	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, dto UpdateUserDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	changes := map[string]interface{}{
		"username":     dto.Username,
		"access_level": dto.AccessLevel,
		"employee_id":  dto.EmployeeID,
	}
	if password, ok := dto.passwordChange(); ok {
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		changes["password_hash"] = hash
	}

	found, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if datamodel.IsDuplicateKey(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.logger.Info("user updated", "user_id", id)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// EnsureDefaultAdmin creates the administrator account unless the username
// is already taken. It reports whether an account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to look up default admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	if _, err := s.CreateUser(ctx, CreateUserDTO{
		Username:    username,
		Password:    password,
		AccessLevel: coreuser.AccessLevelAdmin,
	}); err != nil {
		return false, err
	}

	s.logger.Warn("default admin account created, change its password", "username", username)
	return true, nil
}
