package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/constants"
	"github.com/yukikurage/club-projects-api/internal/database"
	"github.com/yukikurage/club-projects-api/internal/middleware"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/notify"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"github.com/yukikurage/club-projects-api/internal/services"
	"github.com/yukikurage/club-projects-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiTestEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	tokens   *auth.TokenManager
	members  repository.MemberRepository
	projects repository.ProjectRepository
}

type apiResponse struct {
	code    int
	body    map[string]interface{}
	cookies []*http.Cookie
}

func (r apiResponse) data() map[string]interface{} {
	data, _ := r.body["data"].(map[string]interface{})
	return data
}

func (r apiResponse) list() []interface{} {
	list, _ := r.body["data"].([]interface{})
	return list
}

func setupAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.Models()...))

	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	tokens := auth.NewTokenManager("handlers-secret", time.Hour)
	notifier := notify.Discard{}

	h := Handlers{
		Auth:     NewAuthHandler(services.NewAuthService(memberRepo, tokens, notifier)),
		Projects: NewProjectHandler(services.NewProjectService(projectRepo, memberRepo, notifier), storage.NewDiskStore(t.TempDir(), 1<<10)),
		Members:  NewMemberHandler(services.NewMemberService(memberRepo, projectRepo, achievementRepo)),
		Admin:    NewAdminHandler(services.NewModerationService(projectRepo, notifier), services.NewAchievementService(achievementRepo, memberRepo)),
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, h, middleware.NewAuthenticator(memberRepo, tokens))

	return &apiTestEnv{
		db:       db,
		router:   r,
		tokens:   tokens,
		members:  memberRepo,
		projects: projectRepo,
	}
}

func (e *apiTestEnv) member(t *testing.T, name string, role models.Role) (*models.Member, string) {
	t.Helper()

	m := &models.Member{
		FullName:     name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, e.members.Create(m))

	token, _, err := e.tokens.Issue(m.ID, string(m.Role))
	require.NoError(t, err)
	return m, "Bearer " + token
}

func (e *apiTestEnv) project(t *testing.T, owner *models.Member, title string, status models.ProjectStatus) *models.Project {
	t.Helper()

	p := &models.Project{
		Title:        title,
		Description:  strings.Repeat("A detailed description. ", 4),
		Category:     "Web Development",
		Technologies: "Go, PostgreSQL",
		OwnerID:      owner.ID,
		Status:       status,
		IsPublic:     true,
	}
	require.NoError(t, e.projects.Create(p))
	return p
}

func (e *apiTestEnv) do(t *testing.T, method, path string, payload interface{}, authorization string, cookies ...*http.Cookie) apiResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(t, req, authorization, cookies...)
}

func (e *apiTestEnv) serve(t *testing.T, req *http.Request, authorization string, cookies ...*http.Cookie) apiResponse {
	t.Helper()

	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	resp := apiResponse{code: w.Code, body: map[string]interface{}{}, cookies: w.Result().Cookies()}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.body), w.Body.String())
	}
	return resp
}
