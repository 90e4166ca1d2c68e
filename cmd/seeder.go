package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/core/clock"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/attendance-management/internal/employee"
	employeePostgres "github.com/frahmantamala/attendance-management/internal/employee/postgres"
	"github.com/frahmantamala/attendance-management/internal/leave"
	leavePostgres "github.com/frahmantamala/attendance-management/internal/leave/postgres"
	"github.com/frahmantamala/attendance-management/internal/shift"
	shiftPostgres "github.com/frahmantamala/attendance-management/internal/shift/postgres"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the default admin, sample employees and a week of attendance.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := logger.Init(cfg.Observability.Logging)

		db, sqlDB, err := initDB(cfg.Database, cfg.Observability.Logging.Level)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		loc, err := cfg.Attendance.Location()
		if err != nil {
			log.Fatalf("invalid timezone: %v", err)
		}

		ctx := context.Background()
		if clearData {
			if err := clearTables(db); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			lg.Info("existing data cleared")
		}

		s := &seeder{
			db:     db,
			clock:  clock.New(loc, nil),
			hasher: auth.NewPasswordHasher(cfg.Security.BCryptCost),
			logger: lg,
		}
		if err := s.run(ctx, cfg.Security.DefaultAdminUsername, cfg.Security.DefaultAdminPassword, cfg.Security.DefaultEmployeePassword); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		lg.Info("seed completed")
	},
}

type seeder struct {
	db     *gorm.DB
	clock  *clock.Clock
	hasher *auth.PasswordHasher
	logger *slog.Logger
}

var sampleEmployees = []employee.CreateEmployeeDTO{
	{FirstName: "Mario", LastName: "Rossi", BadgeNumber: "EMP001", JobRole: "Sviluppatore", HireDate: "2022-03-01", Email: "mario.rossi@example.com"},
	{FirstName: "Giulia", LastName: "Bianchi", BadgeNumber: "EMP002", JobRole: "Project Manager", HireDate: "2021-09-15", Email: "giulia.bianchi@example.com"},
	{FirstName: "Luca", LastName: "Verdi", BadgeNumber: "EMP003", JobRole: "Analista", HireDate: "2023-01-10", Email: "luca.verdi@example.com"},
}

func (s *seeder) run(ctx context.Context, adminUser, adminPassword, employeePassword string) error {
	users := user.NewService(userPostgres.NewUserRepository(s.db), s.hasher, s.logger)
	if created, err := users.EnsureDefaultAdmin(ctx, adminUser, adminPassword); err != nil {
		return err
	} else if !created {
		s.logger.Info("admin user already exists", "username", adminUser)
	}

	employees := employee.NewService(employeePostgres.NewEmployeeRepository(s.db), s.hasher, nil, s.clock, employeePassword, s.logger)
	var ids []int64
	for _, dto := range sampleEmployees {
		res, err := employees.CreateEmployee(ctx, dto)
		if errors.Is(err, employee.ErrDuplicateValue) {
			s.logger.Info("employee already exists", "badge_number", dto.BadgeNumber)
			continue
		}
		if err != nil {
			return err
		}
		ids = append(ids, res.EmployeeID)
		s.logger.Info("seeded employee", "badge_number", dto.BadgeNumber, "employee_id", res.EmployeeID)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.seedAttendance(ctx, ids); err != nil {
		return err
	}

	shifts := shift.NewService(shiftPostgres.NewShiftRepository(s.db), s.logger)
	today := s.clock.Today()
	for i, id := range ids {
		start := "09:00"
		if i%2 == 1 {
			start = "13:00"
		}
		end := "17:00"
		if i%2 == 1 {
			end = "21:00"
		}
		if _, err := shifts.CreateShift(ctx, shift.CreateShiftDTO{EmployeeID: id, Date: today, StartTime: start, EndTime: end}); err != nil {
			return err
		}
	}

	requests := leave.NewService(leavePostgres.NewRequestRepository(s.db), nil, s.clock, false, s.logger)
	from := s.clock.Now().AddDate(0, 0, 14).Format(clock.DateLayout)
	to := s.clock.Now().AddDate(0, 0, 18).Format(clock.DateLayout)
	reason := "Vacanza estiva"
	if _, err := requests.SubmitRequest(ctx, leave.SubmitRequestDTO{
		EmployeeID: ids[0], RequestType: "Ferie", StartDate: from, EndDate: to, Reason: &reason,
	}); err != nil {
		return err
	}

	return nil
}

// seedAttendance fills the previous five weekdays with closed presences.
func (s *seeder) seedAttendance(ctx context.Context, ids []int64) error {
	in, out := "09:00:00", "17:30:00"
	day := s.clock.Now()
	for seeded := 0; seeded < 5; {
		day = day.AddDate(0, 0, -1)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		seeded++
		for _, id := range ids {
			row := attendanceDatamodel.Record{
				EmployeeID:   id,
				Date:         day.Format(clock.DateLayout),
				Category:     attendance.CategoryPresence,
				EntranceTime: &in,
				ExitTime:     &out,
				Status:       attendance.StatusApproved,
			}
			if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func clearTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		models := datamodel.Models()
		for i := len(models) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
