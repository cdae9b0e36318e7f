package db

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cms-extensions/internal/config"
)

var (
	mu     sync.RWMutex
	gormDB *gorm.DB
)

// ErrNotInitialized is returned when no ambient database has been installed.
var ErrNotInitialized = errors.New("db: not initialized")

// InitDBFromConfig opens the postgres connection described by cfg and
// installs it as the ambient database.
func InitDBFromConfig(cfg *config.APIConfig) error {
	conn, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("db: open: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("db: pool: %w", err)
	}
	pool := cfg.DB.Pool
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetime) * time.Second)
	}

	SetDB(conn)
	return nil
}

// GetDB returns the ambient database handle. It is nil until
// InitDBFromConfig or SetDB has been called.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return gormDB
}

// SetDB replaces the ambient database handle.
func SetDB(conn *gorm.DB) {
	mu.Lock()
	gormDB = conn
	mu.Unlock()
}

// Executor returns a QueryExecutor over the ambient database.
func Executor() (*QueryExecutor, error) {
	conn := GetDB()
	if conn == nil {
		return nil, ErrNotInitialized
	}
	return NewQueryExecutor(conn), nil
}

// Close releases the ambient connection pool.
func Close() error {
	conn := GetDB()
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
