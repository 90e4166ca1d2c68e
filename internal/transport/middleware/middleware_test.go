package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withUser(r *http.Request, level string) *http.Request {
	return r.WithContext(internal.ContextWithUser(r.Context(), &internal.User{ID: 1, Username: "u", AccessLevel: level}))
}

var _ = Describe("Middleware", func() {
	var lg *slog.Logger

	BeforeEach(func() {
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	Describe("RequireAccessLevel", func() {
		It("rejects anonymous requests with 401", func() {
			w := httptest.NewRecorder()
			RequireAdmin(lg)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects employees on manager routes with 403", func() {
			w := httptest.NewRecorder()
			req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), coreuser.AccessLevelEmployee)
			RequireManager(lg)(okHandler).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring(`"code":403`))
		})

		It("lets managers through manager routes but not admin routes", func() {
			w := httptest.NewRecorder()
			req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), coreuser.AccessLevelManager)
			RequireManager(lg)(okHandler).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = httptest.NewRecorder()
			RequireAdmin(lg)(okHandler).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("RequestID", func() {
		It("reuses the caller's trace id and exposes it to chi", func() {
			var seen string
			h := RequestID(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = chiMiddleware.GetReqID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(TraceIDHeader, "trace-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Expect(seen).To(Equal("trace-123"))
			Expect(w.Header().Get(TraceIDHeader)).To(Equal("trace-123"))
		})

		It("mints an id when none is sent", func() {
			w := httptest.NewRecorder()
			RequestID(lg)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			Expect(w.Header().Get(TraceIDHeader)).To(HaveLen(36))
		})
	})

	Describe("RecoveryMiddleware", func() {
		It("turns a panic into a 500 without leaking its value", func() {
			h := RecoveryMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("db password is hunter2")
			}))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).NotTo(ContainSubstring("hunter2"))
		})
	})

	Describe("LoggingMiddleware", func() {
		It("masks sensitive JSON fields in the request body", func() {
			var buf bytes.Buffer
			base := logger.New(&buf, "info", "json")

			h := RequestID(base)(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				Expect(string(body)).To(ContainSubstring("Admin123"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"accessToken":"abc","user":{"username":"admin"}}`))
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"Admin123"}`))
			req.Header.Set("Content-Type", "application/json")
			h.ServeHTTP(httptest.NewRecorder(), req)

			Expect(buf.String()).NotTo(ContainSubstring("Admin123"))
			Expect(buf.String()).NotTo(ContainSubstring(`\"abc\"`))
			Expect(buf.String()).To(ContainSubstring("traceID"))
		})

		It("does not log binary bodies", func() {
			lw := &responseWriter{ResponseWriter: httptest.NewRecorder(), body: &bytes.Buffer{}}
			lw.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			lw.Write([]byte{0x50, 0x4b, 0x03, 0x04})
			Expect(lw.body.Len()).To(BeZero())
			Expect(lw.size).To(Equal(4))
		})
	})

	Describe("filterSensitiveJSON", func() {
		It("masks nested keys", func() {
			out := filterSensitiveBody([]byte(`{"items":[{"refreshToken":"x","name":"n"}]}`))
			Expect(out).To(ContainSubstring(`"refreshToken":"[FILTERED]"`))
			Expect(out).To(ContainSubstring(`"name":"n"`))
		})
	})
})
