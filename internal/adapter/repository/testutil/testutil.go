// Package testutil opens throwaway databases carrying the production schema.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/database"
)

// NewDB opens an in-memory SQLite database private to tb and applies the
// embedded migrations, including the project_dashboard view.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// a single connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if _, err := database.Migrate(db, "sqlite3"); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedProject inserts a project. UpdatedAt is honoured when set so tests can
// control recency ordering.
func SeedProject(tb testing.TB, db *gorm.DB, p entities.Project) *entities.Project {
	tb.Helper()
	if p.Status == "" {
		p.Status = entities.ProjectStatusActive
	}
	if p.TimelineHealth == "" {
		p.TimelineHealth = entities.TimelineOnTrack
	}
	if p.Priority == "" {
		p.Priority = "medium"
	}
	if err := db.Create(&p).Error; err != nil {
		tb.Fatalf("seed project %s: %v", p.ID, err)
	}
	return &p
}

// SeedTask inserts a task
func SeedTask(tb testing.TB, db *gorm.DB, t entities.Task) {
	tb.Helper()
	if err := db.Create(&t).Error; err != nil {
		tb.Fatalf("seed task %s: %v", t.ID, err)
	}
}
