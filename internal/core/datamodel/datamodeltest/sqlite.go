// Package datamodeltest opens throwaway sqlite stores for repository tests.
package datamodeltest

import (
	"github.com/frahmantamala/attendance-management/internal/core/datamodel"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite returns a migrated in-memory database. The pool is pinned
// to one connection because every new sqlite :memory: connection is an
// empty database.
func OpenSQLite() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), datamodel.GormConfig(nil))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := datamodel.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
