package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/attendance-management/api"
	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/activity"
	activityPostgres "github.com/frahmantamala/attendance-management/internal/activity/postgres"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-management/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-management/internal/auth"
	authPostgres "github.com/frahmantamala/attendance-management/internal/auth/postgres"
	"github.com/frahmantamala/attendance-management/internal/core/clock"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/attendance-management/internal/dashboard/postgres"
	"github.com/frahmantamala/attendance-management/internal/employee"
	employeePostgres "github.com/frahmantamala/attendance-management/internal/employee/postgres"
	"github.com/frahmantamala/attendance-management/internal/leave"
	leavePostgres "github.com/frahmantamala/attendance-management/internal/leave/postgres"
	"github.com/frahmantamala/attendance-management/internal/shift"
	shiftPostgres "github.com/frahmantamala/attendance-management/internal/shift/postgres"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/transport/rest"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/frahmantamala/attendance-management/pkg/tracing"

	"github.com/go-chi/chi"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	SQLDB    *sql.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Redis    *redis.Client
	Logger   *slog.Logger
	Shutdown tracing.ShutdownFunc
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		deps.Logger.Error("Failed to set up routes", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.close(ctx)
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

// close drains in-flight event handlers before releasing the stores they use.
func (d *Dependencies) close(ctx context.Context) {
	d.EventBus.Wait()
	if d.Shutdown != nil {
		if err := d.Shutdown(ctx); err != nil {
			d.Logger.Error("Tracer shutdown error", "error", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("Redis close error", "error", err)
		}
	}
	if err := d.SQLDB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger
	ctx := context.Background()

	loc, err := cfg.Attendance.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc, nil)
	hasher := auth.NewPasswordHasher(cfg.Security.BCryptCost)
	base := transport.NewBaseHandler(lg)

	var blacklist auth.Blacklist = auth.NewMemoryBlacklist()
	if deps.Redis != nil {
		blacklist = auth.NewRedisBlacklist(deps.Redis, cfg.Redis.KeyPrefix)
	}

	activityService := activity.NewService(activityPostgres.NewActivityRepository(deps.DB), lg)
	activityService.RegisterEventHandlers(deps.EventBus)

	userService := user.NewService(userPostgres.NewUserRepository(deps.DB), hasher, lg)
	if _, err := userService.EnsureDefaultAdmin(ctx, cfg.Security.DefaultAdminUsername, cfg.Security.DefaultAdminPassword); err != nil {
		return fmt.Errorf("failed to ensure default admin: %w", err)
	}

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.JWTAccessSecret,
		cfg.Security.JWTRefreshSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.DB), tokens, hasher, blacklist, lg)

	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(deps.DB), hasher, deps.EventBus, clk, cfg.Security.DefaultEmployeePassword, lg)
	attendanceService := attendance.NewService(attendancePostgres.NewAttendanceRepository(deps.DB), deps.EventBus, clk, lg)
	leaveService := leave.NewService(leavePostgres.NewRequestRepository(deps.DB), deps.EventBus, clk, cfg.Attendance.StrictRequestTransitions, lg)
	shiftService := shift.NewService(shiftPostgres.NewShiftRepository(deps.DB), lg)
	dashboardService := dashboard.NewService(dashboardPostgres.NewDashboardRepository(initSQLX(deps.SQLDB, cfg.Database.Driver)), clk, lg)

	doc, err := swagger.Load(ctx, api.OpenAPI)
	if err != nil {
		return err
	}

	rest.RegisterAllRoutes(deps.Router, rest.Options{
		DB:             deps.SQLDB,
		DBDriver:       cfg.Database.Driver,
		AllowedOrigins: cfg.Server.Origins(),
		Logger:         lg,
	}, rest.Handlers{
		Auth:       auth.NewHandler(base, authService),
		User:       user.NewHandler(base, userService),
		Employee:   employee.NewHandler(base, employeeService),
		Attendance: attendance.NewHandler(base, attendanceService),
		Leave:      leave.NewHandler(base, leaveService),
		Shift:      shift.NewHandler(base, shiftService),
		Dashboard:  dashboard.NewHandler(base, dashboardService),
		Activity:   activity.NewHandler(base, activityService),
		Document:   doc,
	})
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Init(config.Observability.Logging)

	shutdown, err := tracing.InitTracer(context.Background(), config.Observability.Tracing, config.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	db, sqlDB, err := initDB(config.Database, config.Observability.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := initRedis(config.Redis)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		SQLDB:    sqlDB,
		Router:   chi.NewRouter(),
		EventBus: events.NewEventBus(lg),
		Redis:    redisClient,
		Logger:   lg,
		Shutdown: shutdown,
	}, nil
}

// initRedis returns nil when no address is configured; revoked tokens are
// then kept in process memory.
func initRedis(cfg internal.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := internal.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
