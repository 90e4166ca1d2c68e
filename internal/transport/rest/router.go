package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/activity"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	"github.com/frahmantamala/attendance-management/internal/employee"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/shift"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/go-chi/chi"
)

// Handlers bundles every HTTP handler mounted by RegisterAllRoutes.
// Nil handlers leave their routes unmounted.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Employee   *employee.Handler
	Attendance *attendance.Handler
	Leave      *leave.Handler
	Shift      *shift.Handler
	Dashboard  *dashboard.Handler
	Activity   *activity.Handler
	Document   *swagger.Document
}

type Options struct {
	DB             *sql.DB
	DBDriver       string
	AllowedOrigins []string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, opts Options, h Handlers) {
	healthHandler := NewHealthHandler(opts.DB, opts.DBDriver)
	lg := opts.Logger

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID(lg))
	router.Use(middleware.Tracing)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware(lg))

	if h.Document != nil {
		router.Get(swagger.YAMLPath, h.Document.ServeYAML)
		router.Get(swagger.JSONPath, h.Document.ServeJSON)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/v1/health", healthHandler.healthCheckHandler)
		r.Get("/v1/ping", healthHandler.pingHandler)

		if h.Auth == nil {
			return
		}

		r.Post("/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			pr.Post("/logout", h.Auth.Logout)
			pr.Get("/users/me", h.Auth.Me)

			registerAuthenticated(pr, h)

			pr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequireManager(lg))
				registerManager(mr, h)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(middleware.RequireAdmin(lg))
				registerAdmin(ar, h)
			})
		})
	})
}

// registerAuthenticated mounts routes open to every logged-in user. The
// handlers restrict employees to their own records.
func registerAuthenticated(r chi.Router, h Handlers) {
	if h.Attendance != nil {
		r.Post("/presenze/entrata", h.Attendance.ClockIn)
		r.Post("/presenze/uscita", h.Attendance.ClockOut)
		r.Get("/presenze/dipendente/{id}", h.Attendance.ListForEmployee)
		r.Get("/presenze/statistiche", h.Attendance.Statistics)
	}
	if h.Leave != nil {
		r.Post("/richieste", h.Leave.SubmitRequest)
		r.Get("/richieste", h.Leave.ListRequests)
	}
	if h.Shift != nil {
		r.Get("/turni", h.Shift.ListShifts)
	}
}

func registerManager(r chi.Router, h Handlers) {
	if h.Attendance != nil {
		r.Get("/presenze/oggi", h.Attendance.ListToday)
		r.Get("/presenze/statistiche/export", h.Attendance.ExportStatistics)
	}
	if h.Dashboard != nil {
		r.Get("/dashboard/stats", h.Dashboard.Stats)
	}
	if h.Leave != nil {
		r.Put("/richieste/{id}", h.Leave.UpdateStatus)
	}
	if h.Shift != nil {
		r.Post("/turni", h.Shift.CreateShift)
	}
	if h.Employee != nil {
		r.Get("/dipendenti", h.Employee.ListEmployees)
	}
}

func registerAdmin(r chi.Router, h Handlers) {
	if h.User != nil {
		r.Post("/users", h.User.CreateUser)
		r.Get("/users", h.User.ListUsers)
		r.Put("/users/{id}", h.User.UpdateUser)
		r.Delete("/users/{id}", h.User.DeleteUser)
	}
	if h.Employee != nil {
		r.Post("/dipendenti", h.Employee.CreateEmployee)
		r.Put("/dipendenti/{id}", h.Employee.UpdateEmployee)
		r.Delete("/dipendenti/{id}", h.Employee.DeleteEmployee)
	}
	if h.Activity != nil {
		r.Get("/activity", h.Activity.ListActivity)
	}
}
