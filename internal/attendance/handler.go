package attendance

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	coreuser "github.com/frahmantamala/attendance-management/internal/core/user"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	ClockIn(ctx context.Context, dto ClockDTO) (*ClockInResult, error)
	ClockOut(ctx context.Context, dto ClockDTO) (*ClockOutResult, error)
	ListToday(ctx context.Context) ([]TodayEntry, error)
	ListForEmployee(ctx context.Context, employeeID int64, filter MonthFilter) ([]Record, error)
	MonthlyStatistics(ctx context.Context, filter MonthFilter) (Period, []*EmployeeStatistics, error)
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

// decodeClock reads the clock body. An omitted employeeId means the
// caller's own employee.
func (h *Handler) decodeClock(w http.ResponseWriter, r *http.Request, op string) (ClockDTO, bool) {
	var dto ClockDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, op, err)
		return dto, false
	}

	u, ok := h.CurrentUser(w, r)
	if !ok {
		return dto, false
	}
	if dto.EmployeeID == 0 && u.EmployeeID != nil {
		dto.EmployeeID = *u.EmployeeID
	}
	if dto.EmployeeID != 0 && !h.AuthorizeEmployee(w, r, dto.EmployeeID) {
		return dto, false
	}
	return dto, true
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeClock(w, r, "ClockIn")
	if !ok {
		return
	}

	result, err := h.Service.ClockIn(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, "ClockIn", err)
		return
	}

	h.WriteMessage(w, http.StatusCreated, "Clock-in recorded", map[string]interface{}{
		"recordId":     result.RecordID,
		"entranceTime": result.EntranceTime,
	})
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeClock(w, r, "ClockOut")
	if !ok {
		return
	}

	result, err := h.Service.ClockOut(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, "ClockOut", err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Clock-out recorded", map[string]interface{}{
		"recordId": result.RecordID,
		"exitTime": result.ExitTime,
	})
}

func (h *Handler) ListToday(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListToday(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, "ListToday", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, "ListForEmployee", err)
		return
	}
	if !h.AuthorizeEmployee(w, r, employeeID) {
		return
	}

	filter, err := h.monthFilter(r)
	if err != nil {
		h.HandleServiceError(w, r, "ListForEmployee", err)
		return
	}

	records, err := h.Service.ListForEmployee(r.Context(), employeeID, filter)
	if err != nil {
		h.HandleServiceError(w, r, "ListForEmployee", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

// Statistics lists every active employee for managers and only the
// caller's own row for everyone else.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	u, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}

	filter, err := h.monthFilter(r)
	if err != nil {
		h.HandleServiceError(w, r, "Statistics", err)
		return
	}

	_, rows, err := h.Service.MonthlyStatistics(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, "Statistics", err)
		return
	}

	h.WriteJSON(w, http.StatusOK, visibleStatistics(u, rows))
}

func (h *Handler) ExportStatistics(w http.ResponseWriter, r *http.Request) {
	filter, err := h.monthFilter(r)
	if err != nil {
		h.HandleServiceError(w, r, "ExportStatistics", err)
		return
	}

	period, rows, err := h.Service.MonthlyStatistics(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, "ExportStatistics", err)
		return
	}

	var buf bytes.Buffer
	if err := WriteStatisticsXLSX(&buf, period, rows); err != nil {
		h.HandleServiceError(w, r, "ExportStatistics", fmt.Errorf("failed to build workbook: %w", err))
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(period)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Logger.Error("ExportStatistics: failed to write workbook", "error", err)
	}
}

func (h *Handler) monthFilter(r *http.Request) (MonthFilter, error) {
	month, err := h.QueryInt(r, "month", "mese")
	if err != nil {
		return MonthFilter{}, err
	}
	year, err := h.QueryInt(r, "year", "anno")
	if err != nil {
		return MonthFilter{}, err
	}
	return MonthFilter{Month: month, Year: year}, nil
}

func visibleStatistics(u *internal.User, rows []*EmployeeStatistics) []*EmployeeStatistics {
	if coreuser.IsManager(u.AccessLevel) {
		return rows
	}
	out := make([]*EmployeeStatistics, 0, 1)
	for _, row := range rows {
		if transport.CanActForEmployee(u, row.EmployeeID) {
			out = append(out, row)
		}
	}
	return out
}
