package leave

import (
	"context"
	"net/http"
	"strings"

	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	SubmitRequest(ctx context.Context, dto SubmitRequestDTO) (int64, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error)
	UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}

	var dto SubmitRequestDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, "SubmitRequest", err)
		return
	}
	if dto.EmployeeID == 0 && u.EmployeeID != nil {
		dto.EmployeeID = *u.EmployeeID
	}
	if dto.EmployeeID != 0 && !h.AuthorizeEmployee(w, r, dto.EmployeeID) {
		return
	}

	id, err := h.Service.SubmitRequest(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, "SubmitRequest", err)
		return
	}

	h.WriteMessage(w, http.StatusCreated, "Request submitted", map[string]interface{}{"requestId": id})
}

// ListRequests shows managers every request and everyone else only the
// requests of their own employee.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}

	var filter ListFilter
	for _, name := range []string{"status", "stato"} {
		if s := strings.TrimSpace(r.URL.Query().Get(name)); s != "" {
			filter.Status = &s
			break
		}
	}

	if !coreuser.IsManager(u.AccessLevel) {
		if u.EmployeeID == nil {
			h.WriteJSON(w, http.StatusOK, []*Request{})
			return
		}
		filter.EmployeeID = u.EmployeeID
	}

	requests, err := h.Service.ListRequests(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, "ListRequests", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, requests)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, "UpdateStatus", err)
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, "UpdateStatus", err)
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), id, dto); err != nil {
		h.HandleServiceError(w, r, "UpdateStatus", err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Request status updated", nil)
}
