package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes creates the secondary indexes the list and aggregation queries
// depend on. AutoMigrate already covers indexes declared in struct tags; the
// ones here exist for query paths that filter on non-tagged columns.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task listing filters and ordering
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Project listing order
		{"projects", "idx_projects_created_at", "created_at"},

		// Comment conversation order
		{"comments", "idx_comments_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
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
