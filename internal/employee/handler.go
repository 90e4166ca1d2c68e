package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*CreateResult, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, dto UpdateEmployeeDTO) error
	DeleteEmployee(ctx context.Context, id int64) error
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

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, "CreateEmployee", err)
		return
	}

	result, err := h.Service.CreateEmployee(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, "CreateEmployee", err)
		return
	}

	extra := map[string]interface{}{"employeeId": result.EmployeeID}
	message := "Employee created"
	if result.UserID != nil {
		extra["userId"] = *result.UserID
		message = "Employee and user created"
	}
	h.WriteMessage(w, http.StatusCreated, message, extra)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "ListEmployees", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, "UpdateEmployee", err)
		return
	}

	var dto UpdateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, "UpdateEmployee", err)
		return
	}

	if err := h.Service.UpdateEmployee(r.Context(), id, dto); err != nil {
		h.HandleServiceError(w, r, "UpdateEmployee", err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Employee updated", nil)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, "DeleteEmployee", err)
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, "DeleteEmployee", err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Employee deleted", nil)
}
