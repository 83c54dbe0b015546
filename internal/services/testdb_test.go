package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the schema created by
// hand. AutoMigrate would carry the postgres uuid defaults over, which
// sqlite cannot evaluate, so the test tables declare plain columns and
// rely on the services always setting IDs explicitly.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps gorm's pooled connections on the
	// same store while isolating tests from each other.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE learning_sessions (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL,
			student_name TEXT,
			grade TEXT NOT NULL,
			career TEXT NOT NULL,
			subject TEXT NOT NULL,
			skill TEXT NOT NULL,
			strategy TEXT NOT NULL,
			cache_hit BOOLEAN NOT NULL DEFAULT FALSE,
			generation_ms INTEGER NOT NULL DEFAULT 0,
			cost_estimate REAL NOT NULL DEFAULT 0,
			containers TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME
		)`,
		`CREATE TABLE session_analytics (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE daily_assignments (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL,
			assigned_date TEXT NOT NULL,
			subject TEXT NOT NULL,
			skill TEXT NOT NULL,
			career TEXT,
			status TEXT NOT NULL DEFAULT 'assigned',
			estimated_min INTEGER NOT NULL DEFAULT 15,
			metadata TEXT,
			started_at DATETIME,
			completed_at DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			UNIQUE (student_id, assigned_date, subject)
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		if dbErr == nil {
			sqlDB.Close()
		}
	})
	return db
}
