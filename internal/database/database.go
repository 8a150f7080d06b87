// Package database manages the SQLite store backing the site registry.
package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vantage/internal/config"
	"vantage/internal/sites"
)

// DBManager owns the gorm connection and migrations.
type DBManager struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// NewDBManager creates a database manager.
func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	return &DBManager{cfg: cfg, logger: logger}
}

// Init opens the database connection, creating the storage directory when
// necessary.
func (dm *DBManager) Init() error {
	if dir := filepath.Dir(dm.cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dm.cfg.DatabasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("accessing database handle: %w", err)
	}
	if dm.cfg.DatabaseMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dm.cfg.DatabaseMaxOpenConns)
	}
	if dm.cfg.DatabaseMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dm.cfg.DatabaseMaxIdleConns)
	}

	dm.db = db
	return nil
}

// GetConnection returns the live gorm handle.
func (dm *DBManager) GetConnection() *gorm.DB {
	return dm.db
}

// MigrateDatabase runs schema migrations.
func (dm *DBManager) MigrateDatabase() error {
	if dm.db == nil {
		return gorm.ErrInvalidDB
	}

	if err := dm.db.AutoMigrate(&sites.Site{}); err != nil {
		dm.logger.Error("Failed to auto-migrate database", slog.Any("error", err))
		return err
	}

	dm.logger.Info("Database migration completed successfully")
	return nil
}

// Close releases the underlying connection.
func (dm *DBManager) Close() error {
	if dm.db == nil {
		return nil
	}
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
