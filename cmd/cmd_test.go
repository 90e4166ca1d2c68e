package cmd

import (
	"os"
	"path/filepath"

	"github.com/frahmantamala/attendance-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testConfig = `
http_server:
  port: 9090
database:
  driver: sqlite
  source: ":memory:"
  auto_migrate: true
security:
  jwt_access_secret: access-secret-access-secret-0123
  jwt_refresh_secret: refresh-secret-refresh-secret-01
attendance:
  timezone: UTC
  strict_request_transitions: true
`

var _ = Describe("loadConfig", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(testConfig), 0o600)).To(Succeed())
		GinkgoT().Setenv("APP_ENV", "")
		GinkgoT().Setenv("DOCKER_ENV", "")
	})

	It("layers the file over the defaults", func() {
		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(9090))
		Expect(cfg.Database.Driver).To(Equal("sqlite"))
		Expect(cfg.Attendance.StrictRequestTransitions).To(BeTrue())
		Expect(cfg.Security.DefaultAdminUsername).To(Equal("admin"))
		Expect(cfg.Security.BCryptCost).To(Equal(10))
	})

	It("lets ENV_ variables override file values", func() {
		GinkgoT().Setenv("ENV_HTTP_SERVER_PORT", "7070")
		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(7070))
	})

	It("reads only the environment in production", func() {
		GinkgoT().Setenv("APP_ENV", "production")
		GinkgoT().Setenv("HTTP_PORT", "6060")
		GinkgoT().Setenv("JWT_ACCESS_SECRET", "access-secret-access-secret-0123")
		GinkgoT().Setenv("JWT_REFRESH_SECRET", "refresh-secret-refresh-secret-01")

		cfg, err := loadConfig(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Env).To(Equal("production"))
		Expect(cfg.Server.Port).To(Equal(6060))
	})

	It("fails without a config file", func() {
		_, err := loadConfig(GinkgoT().TempDir())
		Expect(err).To(MatchError(ContainSubstring("error reading config")))
	})
})

var _ = Describe("initDB", func() {
	It("opens and migrates sqlite", func() {
		cfg := internal.DefaultConfig().Database
		cfg.Source = ":memory:"
		cfg.AutoMigrate = true

		db, sqlDB, err := initDB(cfg, "error")
		Expect(err).NotTo(HaveOccurred())
		defer sqlDB.Close()

		Expect(db.Migrator().HasTable("attendance_records")).To(BeTrue())
		Expect(initSQLX(sqlDB, cfg.Driver).DriverName()).To(Equal("sqlite3"))
	})

	It("rejects unknown drivers", func() {
		cfg := internal.DefaultConfig().Database
		cfg.Driver = "mysql"
		_, _, err := initDB(cfg, "info")
		Expect(err).To(MatchError(ContainSubstring("unsupported database driver")))
	})

	It("maps drivers to database/sql names", func() {
		Expect(sqlDriverName("sqlite")).To(Equal("sqlite3"))
		Expect(sqlDriverName("postgres")).To(Equal("pgx"))
	})
})
