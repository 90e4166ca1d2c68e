package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

// UserRepository returns nil, nil when no user matches.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*userDatamodel.UserWithEmployee, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.UserWithEmployee, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type PasswordComparer interface {
	Compare(hash, password string) bool
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator *JWTTokenGenerator
	passwords      PasswordComparer
	blacklist      Blacklist
	logger         *slog.Logger
	now            func() time.Time
}

// NewService creates a new auth service
func NewService(userRepo UserRepository, tokenGen *JWTTokenGenerator, passwords PasswordComparer, blacklist Blacklist, logger *slog.Logger) *Service {
	if blacklist == nil {
		blacklist = NewMemoryBlacklist()
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		passwords:      passwords,
		blacklist:      blacklist,
		logger:         logger,
		now:            time.Now,
	}
}

// Authenticate validates credentials, stamps the last login and returns
// the profile together with a fresh token pair.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.userRepo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if row == nil || !s.passwords.Compare(row.PasswordHash, dto.Password) {
		s.logger.Warn("login rejected", "username", dto.Username)
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, row.ID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	profile := ToProfile(row)
	tokens, err := s.tokenGenerator.Generate(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("user logged in", "user_id", row.ID, "access_level", row.AccessLevel)
	return &LoginResult{Success: true, User: profile, Tokens: tokens}, nil
}

// RefreshTokens exchanges a refresh token for a new pair. The account is
// reloaded so a changed access level takes effect.
func (s *Service) RefreshTokens(ctx context.Context, dto RefreshTokenDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	claims, err := s.tokenGenerator.Validate(dto.RefreshToken, TokenTypeRefresh)
	if err != nil {
		return AuthTokens{}, err
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return AuthTokens{}, err
	}

	row, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to load user: %w", err)
	}
	if row == nil {
		return AuthTokens{}, ErrInvalidToken
	}

	// a refresh token is single use
	if err := s.revoke(ctx, claims); err != nil {
		return AuthTokens{}, err
	}
	return s.tokenGenerator.Generate(ToProfile(row))
}

// Authorize validates an access token and resolves the current account.
func (s *Service) Authorize(ctx context.Context, token string) (*internal.User, error) {
	claims, err := s.tokenGenerator.Validate(token, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	row, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if row == nil {
		return nil, ErrInvalidToken
	}
	return ToProfile(row).Principal(), nil
}

// Logout revokes the access token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenGenerator.Validate(token, TokenTypeAccess)
	if err != nil {
		return err
	}
	return s.revoke(ctx, claims)
}

func (s *Service) CurrentProfile(ctx context.Context, userID int64) (*Profile, error) {
	row, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if row == nil {
		return nil, ErrInvalidToken
	}
	p := ToProfile(row)
	return &p, nil
}

func (s *Service) revoke(ctx context.Context, claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to revoke token", "user_id", claims.UserID, "error", err)
		return err
	}
	return nil
}

func (s *Service) checkRevoked(ctx context.Context, claims *Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

func ToProfile(row *userDatamodel.UserWithEmployee) Profile {
	return Profile{
		ID:          row.ID,
		Username:    row.Username,
		AccessLevel: row.AccessLevel,
		EmployeeID:  row.EmployeeID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		BadgeNumber: row.BadgeNumber,
		JobRole:     row.JobRole,
	}
}
