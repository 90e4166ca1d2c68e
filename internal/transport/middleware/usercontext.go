package middleware

import (
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// UserContext enriches the request logger with the authenticated user.
// It must run after the auth middleware.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := internal.UserFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		fields := []any{"userID", u.ID, "accessLevel", u.AccessLevel}
		if u.EmployeeID != nil {
			fields = append(fields, "employeeID", *u.EmployeeID)
		}
		ctx := logger.With(r.Context(), fields...)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
