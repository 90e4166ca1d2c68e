package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// RequestID reuses the caller's X-Trace-ID or mints one. The id is exposed
// through chi's GetReqID and added to a request logger derived from lg.
func RequestID(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := r.Context()
			if lg != nil {
				ctx = logger.WithLogger(ctx, lg)
			}
			ctx = context.WithValue(ctx, chiMiddleware.RequestIDKey, traceID)
			ctx = logger.With(ctx, "traceID", traceID)

			w.Header().Set(TraceIDHeader, traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
