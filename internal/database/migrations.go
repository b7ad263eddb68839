package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database.
// Only runs against postgres; the pg_indexes catalog is used to keep the
// operation idempotent.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for owner scoping, filtering and sorting
		{"tasks", "idx_tasks_user_id", "user_id"},
		{"tasks", "idx_tasks_assignee_id", "assignee_id"},
		{"tasks", "idx_tasks_category_id", "category_id"},
		{"tasks", "idx_tasks_completed", "completed"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// User lookup indexes
		{"users", "idx_users_provider_id", "provider_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
