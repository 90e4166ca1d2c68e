package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// RequireAccessLevel lets the request through only when the authenticated
// user holds one of levels.
func RequireAccessLevel(lg *slog.Logger, levels ...string) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)
	allowed := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		allowed[l] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				base.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if _, ok := allowed[user.AccessLevel]; !ok {
				logger.From(r.Context()).Warn("access denied: insufficient access level",
					"user_id", user.ID,
					"access_level", user.AccessLevel,
					"required", levels)
				base.WriteError(w, http.StatusForbidden, internal.ErrForbidden.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(lg *slog.Logger) func(http.Handler) http.Handler {
	return RequireAccessLevel(lg, coreuser.AccessLevelAdmin)
}

func RequireManager(lg *slog.Logger) func(http.Handler) http.Handler {
	return RequireAccessLevel(lg, coreuser.AccessLevelAdmin, coreuser.AccessLevelManager)
}
