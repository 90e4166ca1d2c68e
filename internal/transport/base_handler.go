package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/go-chi/chi"
)

const maxBodyBytes = 1 << 20

var ErrInvalidBody = internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteMessage writes {"message": ...} with extra fields merged in.
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, status int, message string, extra map[string]interface{}) {
	body := map[string]interface{}{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	h.WriteJSON(w, status, body)
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.Logger.Log(context.Background(), level, "http error", "status", status, "message", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// HandleServiceError converts a service error into an HTTP response.
// AppErrors carry their own status and message. Anything else is reported
// as a 500 without leaking its text to the client.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	lg := logger.From(r.Context())

	appErr, ok := internal.AsAppError(err)
	if !ok || appErr.StatusCode == 0 {
		lg.Error(op+": unexpected error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		lg.Error(op+": request failed", "code", appErr.Code, "error", err)
	} else {
		lg.Warn(op+": request rejected", "code", appErr.Code, "error", err)
	}
	h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
}

// DecodeJSON reads a JSON body of at most 1 MiB into dst.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrInvalidBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return ErrInvalidBody.WithCause(err)
	}
	return nil
}

// IDParam parses a positive integer chi URL parameter.
func (h *BaseHandler) IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationError("invalid "+name, internal.ErrCodeInvalidValue)
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter, trying each alias in order.
func (h *BaseHandler) QueryInt(r *http.Request, names ...string) (*int, error) {
	for _, name := range names {
		raw := strings.TrimSpace(r.URL.Query().Get(name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, internal.NewValidationError("invalid "+name, internal.ErrCodeInvalidValue)
		}
		return &v, nil
	}
	return nil, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// CurrentUser returns the authenticated user or writes a 401.
func (h *BaseHandler) CurrentUser(w http.ResponseWriter, r *http.Request) (*internal.User, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return u, true
}

// AuthorizeEmployee lets managers act on any employee and everyone else
// only on the employee linked to their own account. It writes a 403 when
// access is denied.
func (h *BaseHandler) AuthorizeEmployee(w http.ResponseWriter, r *http.Request, employeeID int64) bool {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return false
	}
	if CanActForEmployee(u, employeeID) {
		return true
	}
	logger.From(r.Context()).Warn("access denied: employee mismatch", "user_id", u.ID, "employee_id", employeeID)
	h.WriteError(w, http.StatusForbidden, internal.ErrForbidden.Message)
	return false
}

func CanActForEmployee(u *internal.User, employeeID int64) bool {
	if u == nil {
		return false
	}
	if coreuser.IsManager(u.AccessLevel) {
		return true
	}
	return u.EmployeeID != nil && *u.EmployeeID == employeeID
}
