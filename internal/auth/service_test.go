package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

// Mock UserRepository for testing
type mockUserRepository struct {
	users         map[string]*userDatamodel.UserWithEmployee
	lastLogins    map[int64]time.Time
	errorToReturn error
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func newMockUserRepository() *mockUserRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	admin := &userDatamodel.UserWithEmployee{User: userDatamodel.User{
		ID: 1, Username: "admin", PasswordHash: string(hash), AccessLevel: coreuser.AccessLevelAdmin,
	}}
	employee := &userDatamodel.UserWithEmployee{
		User: userDatamodel.User{
			ID: 2, Username: "M007", PasswordHash: string(hash), AccessLevel: coreuser.AccessLevelEmployee, EmployeeID: int64Ptr(7),
		},
		FirstName:   strPtr("Mario"),
		LastName:    strPtr("Rossi"),
		BadgeNumber: strPtr("M007"),
		JobRole:     strPtr("Developer"),
	}

	return &mockUserRepository{
		users:      map[string]*userDatamodel.UserWithEmployee{"admin": admin, "M007": employee},
		lastLogins: map[int64]time.Time{},
	}
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*userDatamodel.UserWithEmployee, error) {
	if m.errorToReturn != nil {
		return nil, m.errorToReturn
	}
	return m.users[username], nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id int64) (*userDatamodel.UserWithEmployee, error) {
	if m.errorToReturn != nil {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	m.lastLogins[id] = at
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		ctx           = context.Background()
		service       *auth.Service
		mockRepo      *mockUserRepository
		tokenGen      *auth.JWTTokenGenerator
		blacklist     *auth.MemoryBlacklist
		accessSecret  = "test-access-secret-0123456789abcdef"
		refreshSecret = "test-refresh-secret-0123456789abcdef"
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
		blacklist = auth.NewMemoryBlacklist()
		service = auth.NewService(mockRepo, tokenGen, auth.NewPasswordHasher(bcrypt.MinCost), blacklist,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("returns the profile with the linked employee and a token pair", func() {
				result, err := service.Authenticate(ctx, auth.LoginDTO{Username: "M007", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Success).To(gomega.BeTrue())
				gomega.Expect(result.User.AccessLevel).To(gomega.Equal(coreuser.AccessLevelEmployee))
				gomega.Expect(*result.User.EmployeeID).To(gomega.Equal(int64(7)))
				gomega.Expect(*result.User.BadgeNumber).To(gomega.Equal("M007"))
				gomega.Expect(result.Tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.Tokens.AccessToken).ToNot(gomega.Equal(result.Tokens.RefreshToken))
			})

			ginkgo.It("updates the last login timestamp", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.lastLogins).To(gomega.HaveKey(int64(1)))
			})

			ginkgo.It("issues an access token that authorizes the account", func() {
				result, _ := service.Authenticate(ctx, auth.LoginDTO{Username: "M007", Password: "correct_password"})

				user, err := service.Authorize(ctx, result.Tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.ID).To(gomega.Equal(int64(2)))
				gomega.Expect(*user.EmployeeID).To(gomega.Equal(int64(7)))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("rejects an unknown username", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "ghost", Password: "correct_password"})
				gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidCredentials))
			})

			ginkgo.It("rejects a wrong password", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "wrong"})
				gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidCredentials))
				gomega.Expect(mockRepo.lastLogins).To(gomega.BeEmpty())
			})

			ginkgo.It("reports missing fields as a validation error", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "admin"})
				gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("password is required")))
			})

			ginkgo.It("propagates store failures", func() {
				mockRepo.errorToReturn = errors.New("db down")
				_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "x"})
				gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("db down")))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("exchanges a refresh token once", func() {
			result, _ := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "correct_password"})

			tokens, err := service.RefreshTokens(ctx, auth.RefreshTokenDTO{RefreshToken: result.Tokens.RefreshToken})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())

			_, err = service.RefreshTokens(ctx, auth.RefreshTokenDTO{RefreshToken: result.Tokens.RefreshToken})
			gomega.Expect(err).To(gomega.MatchError(auth.ErrTokenRevoked))
		})

		ginkgo.It("refuses an access token in place of a refresh token", func() {
			result, _ := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "correct_password"})

			_, err := service.RefreshTokens(ctx, auth.RefreshTokenDTO{RefreshToken: result.Tokens.AccessToken})
			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("revokes the access token", func() {
			result, _ := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "correct_password"})

			gomega.Expect(service.Logout(ctx, result.Tokens.AccessToken)).To(gomega.Succeed())

			_, err := service.Authorize(ctx, result.Tokens.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(auth.ErrTokenRevoked))
		})
	})

	ginkgo.Describe("Authorize", func() {
		ginkgo.It("rejects tokens of deleted accounts", func() {
			result, _ := service.Authenticate(ctx, auth.LoginDTO{Username: "M007", Password: "correct_password"})
			delete(mockRepo.users, "M007")

			_, err := service.Authorize(ctx, result.Tokens.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})

		ginkgo.It("rejects expired tokens", func() {
			shortLived := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, -time.Minute, time.Hour)
			tokens, err := shortLived.Generate(auth.Profile{ID: 1, Username: "admin"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Authorize(ctx, tokens.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(auth.ErrTokenExpired))
		})

		ginkgo.It("rejects tokens signed with another secret", func() {
			other := auth.NewJWTTokenGenerator("another-access-secret-0123456789ab", refreshSecret, time.Minute, time.Hour)
			tokens, _ := other.Generate(auth.Profile{ID: 1, Username: "admin"})

			_, err := service.Authorize(ctx, tokens.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})
	})
})

var _ = ginkgo.Describe("MemoryBlacklist", func() {
	ginkgo.It("forgets entries once their ttl elapses", func() {
		b := auth.NewMemoryBlacklist()
		ctx := context.Background()

		gomega.Expect(b.Revoke(ctx, "jti-1", 20*time.Millisecond)).To(gomega.Succeed())
		gomega.Expect(b.IsRevoked(ctx, "jti-1")).To(gomega.BeTrue())

		gomega.Eventually(func() bool {
			revoked, _ := b.IsRevoked(ctx, "jti-1")
			return revoked
		}).WithTimeout(time.Second).Should(gomega.BeFalse())
	})

	ginkgo.It("ignores non-positive ttls", func() {
		b := auth.NewMemoryBlacklist()
		gomega.Expect(b.Revoke(context.Background(), "jti-2", 0)).To(gomega.Succeed())
		gomega.Expect(b.IsRevoked(context.Background(), "jti-2")).To(gomega.BeFalse())
	})
})
