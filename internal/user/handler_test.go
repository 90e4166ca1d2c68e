package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/datamodeltest"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("User Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *user.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = datamodeltest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := user.NewService(userPostgres.NewUserRepository(db), auth.NewPasswordHasher(bcrypt.MinCost), slogger)
		handler = user.NewHandler(transport.NewBaseHandler(slogger), service)
	})

	create := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.CreateUser(w, req)
		return w
	}

	It("creates and lists accounts newest first with their employee", func() {
		emp := &employeeDatamodel.Employee{
			FirstName: "Mario", LastName: "Rossi", BadgeNumber: "M007",
			JobRole: "Developer", HireDate: "2023-01-10", Email: "mario@example.com", Active: true,
		}
		Expect(db.Create(emp).Error).NotTo(HaveOccurred())

		Expect(create(`{"username":"admin2","password":"pw","accessLevel":"Admin"}`).Code).To(Equal(http.StatusCreated))
		w := create(`{"username":"M007","password":"pw","accessLevel":"Employee","employeeId":1}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created["userId"]).To(BeEquivalentTo(2))
		Expect(created["message"]).To(Equal("User created"))

		w = httptest.NewRecorder()
		handler.ListUsers(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var users []user.User
		Expect(json.NewDecoder(w.Body).Decode(&users)).To(Succeed())
		Expect(users).To(HaveLen(2))
		Expect(users[0].Username).To(Equal("M007"))
		Expect(*users[0].BadgeNumber).To(Equal("M007"))
		Expect(users[1].FirstName).To(BeNil())
	})

	It("answers 400 for a duplicate username", func() {
		Expect(create(`{"username":"dup","password":"pw","accessLevel":"Employee"}`).Code).To(Equal(http.StatusCreated))

		w := create(`{"username":"dup","password":"pw","accessLevel":"Employee"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["message"]).To(Equal("Username already exists"))
	})

	It("updates an account without touching its password", func() {
		Expect(create(`{"username":"mrossi","password":"pw","accessLevel":"Employee"}`).Code).To(Equal(http.StatusCreated))

		req := httptest.NewRequest(http.MethodPut, "/api/users/1", bytes.NewBufferString(`{"username":"mario","accessLevel":"Responsabile"}`))
		w := httptest.NewRecorder()
		handler.UpdateUser(w, withURLParam(req, "id", "1"))
		Expect(w.Code).To(Equal(http.StatusOK))

		var stored struct {
			Username     string
			AccessLevel  string
			PasswordHash string
		}
		Expect(db.Table("users").Where("id = ?", 1).Take(&stored).Error).To(Succeed())
		Expect(stored.Username).To(Equal("mario"))
		Expect(stored.AccessLevel).To(Equal(coreuser.AccessLevelManager))
		Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw"))).To(Succeed())
	})

	It("answers 404 for unknown accounts", func() {
		req := httptest.NewRequest(http.MethodPut, "/api/users/9", bytes.NewBufferString(`{"username":"x","accessLevel":"Admin"}`))
		w := httptest.NewRecorder()
		handler.UpdateUser(w, withURLParam(req, "id", "9"))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.DeleteUser(w, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/9", nil), "id", "9"))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("deletes accounts", func() {
		Expect(create(`{"username":"gone","password":"pw","accessLevel":"Employee"}`).Code).To(Equal(http.StatusCreated))

		w := httptest.NewRecorder()
		handler.DeleteUser(w, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/1", nil), "id", "1"))
		Expect(w.Code).To(Equal(http.StatusOK))

		var count int64
		Expect(db.Table("users").Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("answers 400 for a non numeric id", func() {
		w := httptest.NewRecorder()
		handler.DeleteUser(w, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/abc", nil), "id", "abc"))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
