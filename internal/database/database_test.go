package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/club-projects-api/internal/config"
	"github.com/yukikurage/club-projects-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBPath: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "mongo"})
	assert.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)

	db, err := gorm.Open(d, GormConfig(logger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	SetDB(db)

	require.NoError(t, Migrate())
	// Second run must skip the indexes that already exist.
	require.NoError(t, MigrateDatabase(db))

	assert.True(t, db.Migrator().HasTable("project_likes"))
	assert.True(t, db.Migrator().HasTable("project_collaborators"))
	assert.True(t, db.Migrator().HasIndex(&models.Project{}, "idx_projects_views"))
}
