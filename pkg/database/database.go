package database

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table managed by AutoMigrate, parents first.
var Models = []interface{}{
	&model.User{},
	&model.Category{},
	&model.Feedback{},
	&model.Comment{},
	&model.Vote{},
	&model.Notification{},
	&model.ActivityLog{},
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || strings.EqualFold(path, ":memory:") {
		return "file::memory:?cache=shared&_foreign_keys=1"
	}
	if strings.HasPrefix(path, "file:") {
		return path
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		os.MkdirAll(dir, 0o755)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=1&_journal_mode=WAL", filepath.ToSlash(path))
}

// Open connects without migrating.
func Open(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg, logger.Warn)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	if cfg.Seed {
		if err := Seed(db); err != nil {
			return nil, fmt.Errorf("seed data: %w", err)
		}
	}

	return db, nil
}
