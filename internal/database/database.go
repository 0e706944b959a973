package database

import (
	"fmt"

	"github.com/ksred/open-orders-api/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the in-memory order store. Nothing survives a restart:
// the dashboard is always seeded fresh from sample data. The shared cache
// keeps every pooled connection on the same in-memory database.
func NewDatabase() (*gorm.DB, error) {
	return open("file::memory:?cache=shared")
}

// NewTestDatabase opens a named in-memory database so tests stay isolated
// from each other within one process.
func NewTestDatabase(name string) (*gorm.DB, error) {
	return open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&types.Order{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
