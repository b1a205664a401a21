package db

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"surety/internal/config"
	"surety/pkg/logger"
)

const (
	defaultMaxOpenConns = 1
	defaultBusyTimeout  = 5 * time.Second
)

var ErrProtectedDatabase = errors.New("database file is protected in this environment")

func NewSQLite(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	if err := checkProtected(cfg); err != nil {
		return nil, err
	}

	log.Info("db: opening sqlite", "path", cfg.Path, "profile", cfg.Profile)

	gormDB, err := gorm.Open(sqlite.Open(buildDSN(cfg)), &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.Info("db: connected")
	return gormDB, nil
}

// Close releases the underlying connection pool.
func Close(gormDB *gorm.DB) error {
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDSN(cfg config.DBConfig) string {
	timeout := cfg.BusyTimeout
	if timeout == 0 {
		timeout = defaultBusyTimeout
	}
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout.Milliseconds()))
	params.Add("_pragma", "journal_mode(WAL)")
	return "file:" + cfg.Path + "?" + params.Encode()
}

func checkProtected(cfg config.DBConfig) error {
	name := filepath.Base(cfg.Path)
	for _, protected := range cfg.Protected {
		if strings.EqualFold(name, protected) {
			return fmt.Errorf("%w: %s", ErrProtectedDatabase, cfg.Path)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newGormLogger(log logger.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: log.With("component", "gorm")}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
