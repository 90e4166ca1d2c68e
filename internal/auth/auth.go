package auth

import (
	"github.com/frahmantamala/attendance-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidCredentials = internal.ErrInvalidCredentials
	ErrInvalidToken       = internal.ErrInvalidToken
	ErrTokenExpired       = internal.ErrTokenExpired
	ErrTokenRevoked       = internal.ErrTokenRevoked
)

type Claims struct {
	UserID      int64  `json:"uid"`
	Username    string `json:"username"`
	AccessLevel string `json:"lvl"`
	EmployeeID  *int64 `json:"eid,omitempty"`
	TokenType   string `json:"typ"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Profile is the account view returned at login, with the linked
// employee's identity when there is one.
type Profile struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	AccessLevel string  `json:"accessLevel"`
	EmployeeID  *int64  `json:"employeeId,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	BadgeNumber *string `json:"badgeNumber,omitempty"`
	JobRole     *string `json:"jobRole,omitempty"`
}

type LoginResult struct {
	Success bool       `json:"success"`
	User    Profile    `json:"user"`
	Tokens  AuthTokens `json:"tokens"`
}

func (p Profile) Principal() *internal.User {
	return &internal.User{
		ID:          p.ID,
		Username:    p.Username,
		AccessLevel: p.AccessLevel,
		EmployeeID:  p.EmployeeID,
	}
}
