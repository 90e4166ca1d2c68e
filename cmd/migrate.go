package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/attendance-management/internal/core/datamodel"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
		Long:  `Apply goose migrations on postgres. On sqlite the gorm models are migrated instead.`,
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Database.Driver == "sqlite" {
		db, sqlDB, err := initDB(cfg.Database, cfg.Observability.Logging.Level)
		if err != nil {
			log.Fatalf("failed to open DB: %v", err)
		}
		defer sqlDB.Close()
		if err := datamodel.AutoMigrate(db); err != nil {
			log.Fatalf("auto migrate: %v", err)
		}
		log.Println("sqlite schema migrated")
		return nil
	}

	db, err := goose.OpenDBWithDriver(sqlDriverName(cfg.Database.Driver), cfg.Database.Source)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}
	if err := goose.RunContext(ctx, command, db, migrateDir); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}
