package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/datamodeltest"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/attendance-management/internal/dashboard/postgres"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func strPtr(s string) *string { return &s }

type failingRepo struct{}

func (failingRepo) Stats(context.Context, string) (*dashboard.Stats, error) {
	return nil, errors.New("connection reset")
}

var _ = Describe("Dashboard", func() {
	var (
		discard = slog.New(slog.NewTextHandler(io.Discard, nil))
		clk     = clock.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
		service *dashboard.Service
	)

	BeforeEach(func() {
		db, err := datamodeltest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())

		employees := []employeeDatamodel.Employee{
			{ID: 1, FirstName: "Mario", LastName: "Rossi", BadgeNumber: "M001", JobRole: "Dev", HireDate: "2023-01-10", Email: "m@example.com", Active: true},
			{ID: 2, FirstName: "Anna", LastName: "Verdi", BadgeNumber: "A002", JobRole: "PM", HireDate: "2023-01-10", Email: "a@example.com", Active: true},
			{ID: 3, FirstName: "Luca", LastName: "Neri", BadgeNumber: "L003", JobRole: "Ops", HireDate: "2023-01-10", Email: "l@example.com", Active: false},
		}
		Expect(db.Create(&employees).Error).To(Succeed())

		records := []attendanceDatamodel.Record{
			{EmployeeID: 1, Date: "2024-03-01", Category: "Presenza", EntranceTime: strPtr("09:00:00"), Status: "Approvata"},
			{EmployeeID: 2, Date: "2024-03-01", Category: "Presenza", EntranceTime: strPtr("08:00:00"), ExitTime: strPtr("12:00:00"), Status: "Approvata"},
			{EmployeeID: 3, Date: "2024-03-01", Category: "Malattia", Status: "Approvata"},
			{EmployeeID: 1, Date: "2024-02-29", Category: "Presenza", EntranceTime: strPtr("09:00:00"), Status: "Approvata"},
		}
		Expect(db.Create(&records).Error).To(Succeed())

		requests := []leaveDatamodel.Request{
			{EmployeeID: 1, RequestType: "Ferie", StartDate: "2024-03-10", EndDate: "2024-03-11", Status: "In attesa", SubmittedOn: "2024-03-01"},
			{EmployeeID: 2, RequestType: "Ferie", StartDate: "2024-03-10", EndDate: "2024-03-11", Status: "Approvata", SubmittedOn: "2024-03-01"},
		}
		Expect(db.Create(&requests).Error).To(Succeed())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		repo := dashboardPostgres.NewDashboardRepository(sqlx.NewDb(sqlDB, "sqlite3"))
		service = dashboard.NewService(repo, clk, discard)
	})

	It("counts today's presences, active staff, pending requests and open entries", func() {
		stats, err := service.Stats(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(*stats).To(Equal(dashboard.Stats{
			TodayCount:      2,
			ActiveEmployees: 2,
			PendingRequests: 1,
			StillPresent:    1,
		}))
	})

	It("serves the counters as JSON", func() {
		handler := dashboard.NewHandler(transport.NewBaseHandler(discard), service)
		w := httptest.NewRecorder()
		handler.Stats(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"todayCount":2,"activeEmployees":2,"pendingRequests":1,"stillPresent":1}`))
	})

	It("reports store failures as a server error", func() {
		handler := dashboard.NewHandler(transport.NewBaseHandler(discard), dashboard.NewService(failingRepo{}, clk, discard))
		w := httptest.NewRecorder()
		handler.Stats(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
