package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is a row of the storage_entries table.
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName sets the table name for gorm.
func (Entry) TableName() string {
	return "storage_entries"
}

// SQLBackend stores keys in a relational database through gorm.
type SQLBackend struct {
	db *gorm.DB
}

// NewSQLBackend returns a backend on db and migrates the storage_entries
// table.
func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage table: %w", err)
	}
	return &SQLBackend{db: db}, nil
}

// OpenSQL opens a database with the named driver ("sqlite" or "postgres")
// and returns a backend on it. SQL statements are logged through logger at
// debug level when it is non-nil.
func OpenSQL(driver, dsn string, logger hclog.Logger) (*SQLBackend, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported SQL driver: %q", driver)
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if logger != nil {
		stdLogger := logger.Named("sql").StandardLogger(&hclog.StandardLoggerOptions{
			ForceLevel: hclog.Debug,
		})
		gormCfg.Logger = gormlogger.New(stdLogger, gormlogger.Config{
			IgnoreRecordNotFoundError: true,
			LogLevel:                  gormlogger.Info,
		})
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	return NewSQLBackend(db)
}

// Name returns the backend name
func (b *SQLBackend) Name() string {
	return "sql"
}

// Get reads the row for key.
func (b *SQLBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := b.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Take(&entry).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, newBackendError(b.Name(), "get", key, err)
	}
	return entry.Value, true, nil
}

// Set upserts the row for key.
func (b *SQLBackend) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).
		Error
	if err != nil {
		return newBackendError(b.Name(), "set", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (b *SQLBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
