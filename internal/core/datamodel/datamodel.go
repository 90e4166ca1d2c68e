// Package datamodel groups the gorm row models and the helpers shared by
// every repository.
package datamodel

import (
	"errors"
	"strings"

	"github.com/frahmantamala/attendance-management/internal/core/datamodel/activity"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/shift"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const pgUniqueViolation = "23505"

func Models() []interface{} {
	return []interface{}{
		&employee.Employee{},
		&user.User{},
		&attendance.Record{},
		&shift.Shift{},
		&leave.Request{},
		&activity.Entry{},
	}
}

// AutoMigrate creates or updates every table. Production schemas are
// managed by goose migrations; this path serves sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// GormConfig enables error translation so unique violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func GormConfig(lg gormlogger.Interface) *gorm.Config {
	if lg == nil {
		lg = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         lg,
	}
}

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
