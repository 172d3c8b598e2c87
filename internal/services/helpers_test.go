package services

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/database"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/notify"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (r *recordingNotifier) Notify(msg notify.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingNotifier) sent() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Message(nil), r.messages...)
}

type testEnv struct {
	db           *gorm.DB
	projects     repository.ProjectRepository
	members      repository.MemberRepository
	achievements repository.AchievementRepository
	notifier     *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))

	return &testEnv{
		db:           db,
		projects:     repository.NewProjectRepository(db),
		members:      repository.NewMemberRepository(db),
		achievements: repository.NewAchievementRepository(db),
		notifier:     &recordingNotifier{},
	}
}

func (e *testEnv) member(t *testing.T, name string, role models.Role) (*models.Member, auth.Identity) {
	t.Helper()

	m := &models.Member{
		FullName:     name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, e.members.Create(m))
	return m, auth.IdentityOf(m)
}

func (e *testEnv) project(t *testing.T, owner *models.Member, title string, status models.ProjectStatus, mutate ...func(*models.Project)) *models.Project {
	t.Helper()

	p := &models.Project{
		Title:        title,
		Description:  strings.Repeat("A detailed description. ", 4),
		Category:     "Web Development",
		Technologies: "Go, PostgreSQL",
		OwnerID:      owner.ID,
		Status:       status,
		IsPublic:     true,
		CreatedAt:    time.Now().UTC(),
	}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, e.projects.Create(p))
	return p
}

func validProjectInput() ProjectInput {
	return ProjectInput{
		Title:        "Campus Navigator",
		Description:  "An indoor navigation app that helps new students find their lecture halls quickly.",
		Category:     "Mobile App",
		Tags:         []string{"Flutter", " maps ", "flutter"},
		GithubURL:    "https://github.com/club/campus-navigator",
		Technologies: "Flutter, Firebase",
	}
}
