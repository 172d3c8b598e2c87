package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/club-projects-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds indexes that are not expressed in the model tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Newest-first listings and popularity sorting
		{&models.Project{}, "projects", "idx_projects_featured_created", "featured, created_at"},
		{&models.Project{}, "projects", "idx_projects_views", "views"},

		// Achievement timeline per member
		{&models.Achievement{}, "achievements", "idx_achievements_member_awarded", "member_id, awarded_at"},
		{&models.Achievement{}, "achievements", "idx_achievements_category_points", "category, points"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}

// MigrateDatabase runs the migrations that follow AutoMigrate.
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
