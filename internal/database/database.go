package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/seispick/internal/models"
	"github.com/killallgit/seispick/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultBusyTimeout is how long SQLite waits on a locked database file
const DefaultBusyTimeout = 5 * time.Second

type DB struct {
	*gorm.DB
}

// Initialize creates a new database connection with the provided configuration
func Initialize(dbPath string, verbose bool) (*DB, error) {
	return InitializeWithTimeout(dbPath, verbose, DefaultBusyTimeout)
}

// InitializeWithTimeout is Initialize with an explicit SQLite busy timeout
func InitializeWithTimeout(dbPath string, verbose bool, busyTimeout time.Duration) (*DB, error) {
	memory := isMemory(dbPath)

	// Ensure the database directory exists
	if !memory {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	// Configure GORM logger
	logLevel := gormlogger.Error
	if verbose {
		logLevel = gormlogger.Info
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath, memory, busyTimeout)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so pin it to one
	if memory {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &DB{DB: db}, nil
}

func isMemory(dbPath string) bool {
	return dbPath == "" || dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

// dsn adds the connection parameters a shared file database needs unless
// the path already sets them. Writers take the lock at BEGIN so concurrent
// transactions queue on the busy timeout instead of failing on upgrade.
func dsn(dbPath string, memory bool, busyTimeout time.Duration) string {
	if memory {
		if dbPath == "" {
			return ":memory:"
		}
		return dbPath
	}
	params := []struct{ key, value string }{
		{"_busy_timeout", fmt.Sprintf("%d", busyTimeout.Milliseconds())},
		{"_journal_mode", "WAL"},
		{"_txlock", "immediate"},
	}
	out := dbPath
	for _, p := range params {
		if strings.Contains(dbPath, p.key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(out, "?") {
			sep = "&"
		}
		out += sep + p.key + "=" + p.value
	}
	return out
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	logger.Component("database").Debug("migrated models", "count", len(models))
	return nil
}

// Migrate creates or updates the events and picks tables
func (db *DB) Migrate() error {
	return db.AutoMigrate(models.All()...)
}

// TableStatus describes one managed table for `migrate status`
type TableStatus struct {
	Name   string
	Exists bool
	Rows   int64
}

// Status reports whether each managed table exists and how many rows it holds
func (db *DB) Status(ctx context.Context) ([]TableStatus, error) {
	var statuses []TableStatus
	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parsing model: %w", err)
		}
		status := TableStatus{Name: stmt.Schema.Table}
		status.Exists = db.DB.Migrator().HasTable(model)
		if status.Exists {
			if err := db.DB.WithContext(ctx).Model(model).Count(&status.Rows).Error; err != nil {
				return nil, fmt.Errorf("counting %s: %w", status.Name, err)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
