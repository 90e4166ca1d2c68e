package transport_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/attendance-management/internal"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func int64Ptr(v int64) *int64 { return &v }

var _ = Describe("BaseHandler", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	DescribeTable("HandleServiceError",
		func(err error, status int, message string) {
			w := httptest.NewRecorder()
			h.HandleServiceError(w, httptest.NewRequest(http.MethodGet, "/", nil), "Op", err)
			Expect(w.Code).To(Equal(status))
			Expect(w.Body.String()).To(MatchJSON(fmt.Sprintf(`{"code":%d,"message":%q}`, status, message)))
		},
		Entry("validation", internal.NewValidationError("bad input", internal.ErrCodeValidationFailed), 400, "bad input"),
		Entry("duplicate", internal.NewDuplicateError("Attendance already recorded for today", internal.ErrCodeDuplicateEntry), 400, "Attendance already recorded for today"),
		Entry("credentials", internal.ErrInvalidCredentials, 401, "Invalid username or password"),
		Entry("forbidden", internal.ErrForbidden, 403, "Insufficient access level"),
		Entry("not found", internal.NewNotFoundError("Request not found", internal.ErrCodeRequestNotFound), 404, "Request not found"),
		Entry("conflict", internal.NewConflictError("closed", internal.ErrCodeInvalidTransition), 409, "closed"),
		Entry("wrapped app error", fmt.Errorf("outer: %w", internal.ErrForbidden), 403, "Insufficient access level"),
		Entry("plain error", errors.New("sql: connection refused"), 500, "internal server error"),
	)

	It("joins every field message of a validation error", func() {
		err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "a", Message: "a is required"},
				{Field: "b", Message: "b is required"},
			}})
		w := httptest.NewRecorder()
		h.HandleServiceError(w, httptest.NewRequest(http.MethodGet, "/", nil), "Op", err)
		Expect(w.Body.String()).To(MatchJSON(`{"code":400,"message":"a is required; b is required"}`))
	})

	It("decodes JSON bodies and rejects malformed ones", func() {
		var dst struct {
			Name string `json:"name"`
		}
		Expect(h.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"x"}`)), &dst)).To(Succeed())
		Expect(dst.Name).To(Equal("x"))

		err := h.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":`)), &dst)
		Expect(err).To(MatchError(transport.ErrInvalidBody))
	})

	It("parses positive id params", func() {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "42")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		id, err := h.IDParam(req, "id")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(int64(42)))

		rctx.URLParams = chi.RouteParams{}
		rctx.URLParams.Add("id", "-1")
		_, err = h.IDParam(req, "id")
		Expect(err).To(MatchError("invalid id"))
	})

	It("reads the first present query alias", func() {
		req := httptest.NewRequest(http.MethodGet, "/?mese=3", nil)
		v, err := h.QueryInt(req, "month", "mese")
		Expect(err).NotTo(HaveOccurred())
		Expect(*v).To(Equal(3))

		v, err = h.QueryInt(httptest.NewRequest(http.MethodGet, "/", nil), "month", "mese")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNil())

		_, err = h.QueryInt(httptest.NewRequest(http.MethodGet, "/?month=march", nil), "month")
		Expect(err).To(MatchError("invalid month"))
	})

	It("extracts bearer tokens case-insensitively", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer abc.def")
		Expect(h.ExtractTokenFromHeader(req)).To(Equal("abc.def"))

		req.Header.Set("Authorization", "Basic dXNlcg==")
		Expect(h.ExtractTokenFromHeader(req)).To(BeEmpty())
	})

	Describe("employee ownership", func() {
		It("lets managers act for anyone", func() {
			Expect(transport.CanActForEmployee(&internal.User{AccessLevel: coreuser.AccessLevelManager}, 9)).To(BeTrue())
			Expect(transport.CanActForEmployee(&internal.User{AccessLevel: coreuser.AccessLevelAdmin}, 9)).To(BeTrue())
		})

		It("limits employees to their own record", func() {
			u := &internal.User{AccessLevel: coreuser.AccessLevelEmployee, EmployeeID: int64Ptr(7)}
			Expect(transport.CanActForEmployee(u, 7)).To(BeTrue())
			Expect(transport.CanActForEmployee(u, 8)).To(BeFalse())
			Expect(transport.CanActForEmployee(&internal.User{AccessLevel: coreuser.AccessLevelEmployee}, 7)).To(BeFalse())
			Expect(transport.CanActForEmployee(nil, 7)).To(BeFalse())
		})

		It("writes 403 or 401 from AuthorizeEmployee", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			Expect(h.AuthorizeEmployee(w, req, 7)).To(BeFalse())
			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			u := &internal.User{AccessLevel: coreuser.AccessLevelEmployee, EmployeeID: int64Ptr(7)}
			req = req.WithContext(internal.ContextWithUser(req.Context(), u))
			w = httptest.NewRecorder()
			Expect(h.AuthorizeEmployee(w, req, 8)).To(BeFalse())
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
