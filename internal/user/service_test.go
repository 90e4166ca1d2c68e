package user_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

type mockRepository struct {
	rows    map[int64]*userDatamodel.User
	nextID  int64
	changes map[string]interface{}
	err     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: map[int64]*userDatamodel.User{}, nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, u *userDatamodel.User) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.rows {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = m.nextID
	m.nextID++
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *mockRepository) GetByUsername(_ context.Context, username string) (*userDatamodel.User, error) {
	for _, u := range m.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, m.err
}

func (m *mockRepository) List(_ context.Context) ([]userDatamodel.UserWithEmployee, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []userDatamodel.UserWithEmployee
	for id := m.nextID - 1; id > 0; id-- {
		if u, ok := m.rows[id]; ok {
			out = append(out, userDatamodel.UserWithEmployee{User: *u})
		}
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, changes map[string]interface{}) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.changes = changes
	u, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	u.Username = changes["username"].(string)
	u.AccessLevel = changes["access_level"].(string)
	if hash, ok := changes["password_hash"].(string); ok {
		u.PasswordHash = hash
	}
	return true, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.rows[id]; !ok {
		return false, m.err
	}
	delete(m.rows, id)
	return true, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func strPtr(s string) *string { return &s }

var _ = Describe("User Service", func() {
	var (
		ctx     = context.Background()
		repo    *mockRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = newMockRepository()
		service = user.NewService(repo, plainHasher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("CreateUser", func() {
		It("stores the hashed password", func() {
			id, err := service.CreateUser(ctx, user.CreateUserDTO{
				Username: "mrossi", Password: "secret", AccessLevel: coreuser.AccessLevelEmployee,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(int64(1)))
			Expect(repo.rows[1].PasswordHash).To(Equal("hashed:secret"))
		})

		It("rejects missing fields", func() {
			_, err := service.CreateUser(ctx, user.CreateUserDTO{Username: "mrossi"})
			appErr, ok := internal.AsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring("password is required"))
		})

		It("rejects unknown access levels", func() {
			_, err := service.CreateUser(ctx, user.CreateUserDTO{Username: "x", Password: "y", AccessLevel: "Root"})
			Expect(err).To(MatchError(ContainSubstring("accessLevel must be one of")))
		})

		It("reports duplicate usernames and leaves the store unchanged", func() {
			dto := user.CreateUserDTO{Username: "mrossi", Password: "a", AccessLevel: coreuser.AccessLevelAdmin}
			_, err := service.CreateUser(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateUser(ctx, dto)
			Expect(err).To(MatchError(user.ErrDuplicateUsername))
			Expect(repo.rows).To(HaveLen(1))
		})
	})

	Describe("UpdateUser", func() {
		BeforeEach(func() {
			_, err := service.CreateUser(ctx, user.CreateUserDTO{Username: "mrossi", Password: "old", AccessLevel: coreuser.AccessLevelEmployee})
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the password when none is supplied", func() {
			err := service.UpdateUser(ctx, 1, user.UpdateUserDTO{Username: "mario", AccessLevel: coreuser.AccessLevelManager})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.changes).NotTo(HaveKey("password_hash"))
			Expect(repo.rows[1].PasswordHash).To(Equal("hashed:old"))
			Expect(repo.rows[1].AccessLevel).To(Equal(coreuser.AccessLevelManager))
		})

		It("rehashes a supplied password", func() {
			err := service.UpdateUser(ctx, 1, user.UpdateUserDTO{Username: "mrossi", AccessLevel: coreuser.AccessLevelEmployee, Password: strPtr("new")})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.rows[1].PasswordHash).To(Equal("hashed:new"))
		})

		It("ignores a blank password", func() {
			err := service.UpdateUser(ctx, 1, user.UpdateUserDTO{Username: "mrossi", AccessLevel: coreuser.AccessLevelEmployee, Password: strPtr("  ")})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.changes).NotTo(HaveKey("password_hash"))
		})

		It("reports missing users", func() {
			err := service.UpdateUser(ctx, 42, user.UpdateUserDTO{Username: "x", AccessLevel: coreuser.AccessLevelEmployee})
			Expect(err).To(MatchError(user.ErrNotFound))
		})

		It("maps unique violations to duplicate usernames", func() {
			repo.err = gorm.ErrDuplicatedKey
			err := service.UpdateUser(ctx, 1, user.UpdateUserDTO{Username: "x", AccessLevel: coreuser.AccessLevelEmployee})
			Expect(err).To(MatchError(user.ErrDuplicateUsername))
		})
	})

	Describe("DeleteUser", func() {
		It("removes the account", func() {
			_, _ = service.CreateUser(ctx, user.CreateUserDTO{Username: "mrossi", Password: "a", AccessLevel: coreuser.AccessLevelEmployee})
			Expect(service.DeleteUser(ctx, 1)).To(Succeed())
			Expect(repo.rows).To(BeEmpty())
		})

		It("reports missing users", func() {
			Expect(service.DeleteUser(ctx, 9)).To(MatchError(user.ErrNotFound))
		})
	})

	Describe("ListUsers", func() {
		It("propagates store failures", func() {
			repo.err = errors.New("boom")
			_, err := service.ListUsers(ctx)
			Expect(err).To(MatchError(ContainSubstring("boom")))
		})
	})

	Describe("EnsureDefaultAdmin", func() {
		It("creates the admin once", func() {
			created, err := service.EnsureDefaultAdmin(ctx, "admin", "Admin123")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())

			created, err = service.EnsureDefaultAdmin(ctx, "admin", "Admin123")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())

			Expect(repo.rows).To(HaveLen(1))
			Expect(repo.rows[1].AccessLevel).To(Equal(coreuser.AccessLevelAdmin))
		})
	})
})
