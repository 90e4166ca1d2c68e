package activity

import (
	"context"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	ListLatest(ctx context.Context, limit *int) ([]*Entry, error)
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

func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := h.QueryInt(r, "limit")
	if err != nil {
		h.HandleServiceError(w, r, "ListActivity", err)
		return
	}

	entries, err := h.Service.ListLatest(r.Context(), limit)
	if err != nil {
		h.HandleServiceError(w, r, "ListActivity", err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}
