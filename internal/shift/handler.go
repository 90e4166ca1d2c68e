package shift

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	CreateShift(ctx context.Context, dto CreateShiftDTO) (int64, error)
	ListShifts(ctx context.Context, filter ListFilter) ([]*Shift, error)
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

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var dto CreateShiftDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, "CreateShift", err)
		return
	}

	id, err := h.Service.CreateShift(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, "CreateShift", err)
		return
	}

	h.WriteMessage(w, http.StatusCreated, "Shift created", map[string]interface{}{"shiftId": id})
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if filter.Date == "" {
		filter.Date = strings.TrimSpace(r.URL.Query().Get("data"))
	}

	employeeID, err := h.QueryInt(r, "employeeId", "id_dipendente")
	if err != nil {
		h.HandleServiceError(w, r, "ListShifts", err)
		return
	}
	if employeeID != nil {
		id := int64(*employeeID)
		filter.EmployeeID = &id
	}

	shifts, err := h.Service.ListShifts(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, "ListShifts", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, shifts)
}
