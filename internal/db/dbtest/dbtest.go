// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"surety/internal/config"
	"surety/internal/db"
	"surety/pkg/logger"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Profile:      config.DBProfileTest,
		Path:         filepath.Join(t.TempDir(), "surety-test.db"),
		MaxOpenConns: 1,
		Protected:    []string{"surety.db", "surety-example.db"},
	}

	conn, err := db.NewSQLite(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}
