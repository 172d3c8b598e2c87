package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/club-projects-api/internal/middleware"
	"github.com/yukikurage/club-projects-api/internal/models"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth     *AuthHandler
	Projects *ProjectHandler
	Members  *MemberHandler
	Admin    *AdminHandler
}

// Health reports that the process is serving requests.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Club Projects API is running",
	})
}

// RegisterRoutes mounts the health check and the /api tree on r.
func RegisterRoutes(r gin.IRouter, h Handlers, authn *middleware.Authenticator) {
	r.GET("/health", Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", authn.RequireAuth(), h.Auth.Me)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.Projects.ListProjects)
			projects.GET("/:id", authn.OptionalAuth(), h.Projects.GetProject)
			projects.POST("", authn.RequireAuth(), h.Projects.CreateProject)
			projects.POST("/upload", authn.RequireAuth(), h.Projects.UploadFile)
			projects.PUT("/:id", authn.RequireAuth(), h.Projects.UpdateProject)
			projects.DELETE("/:id", authn.RequireAuth(), h.Projects.DeleteProject)
			projects.PATCH("/:id/like", authn.RequireAuth(), h.Projects.ToggleLike)
		}

		users := api.Group("/users")
		users.Use(authn.RequireAuth())
		{
			users.GET("", middleware.RequireRole(models.RoleAdmin), h.Members.ListMembers)
			users.GET("/leaderboard", h.Members.Leaderboard)
			users.GET("/:id", h.Members.GetMember)
			users.GET("/:id/projects", h.Members.MemberProjects)
			users.GET("/:id/achievements", h.Members.MemberAchievements)
		}

		admin := api.Group("/admin")
		admin.Use(authn.RequireAuth())
		{
			admin.POST("/achievements", middleware.RequireRole(models.RoleAdmin, models.RoleModerator), h.Admin.AwardAchievement)

			moderation := admin.Group("")
			moderation.Use(middleware.RequireRole(models.RoleAdmin))
			{
				moderation.GET("/projects", h.Admin.ListProjects)
				moderation.GET("/pending-projects", h.Admin.ListByStatus(models.ProjectStatusPending))
				moderation.GET("/approved-projects", h.Admin.ListByStatus(models.ProjectStatusApproved))
				moderation.GET("/rejected-projects", h.Admin.ListByStatus(models.ProjectStatusRejected))
				moderation.PATCH("/projects/:id/approve", h.Admin.ApproveProject)
				moderation.PATCH("/projects/:id/reject", h.Admin.RejectProject)
				moderation.GET("/stats", h.Admin.Stats)
			}
		}
	}
}
