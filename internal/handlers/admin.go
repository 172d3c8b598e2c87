package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/club-projects-api/internal/dto"
	apierrors "github.com/yukikurage/club-projects-api/internal/errors"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/services"
	"github.com/yukikurage/club-projects-api/internal/utils"
)

// AdminHandler serves moderation, achievements and statistics
type AdminHandler struct {
	moderationService  *services.ModerationService
	achievementService *services.AchievementService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(moderationService *services.ModerationService, achievementService *services.AchievementService) *AdminHandler {
	return &AdminHandler{
		moderationService:  moderationService,
		achievementService: achievementService,
	}
}

// ListProjects returns projects in the moderation state named by ?status=
func (h *AdminHandler) ListProjects(c *gin.Context) {
	h.listByStatus(c, models.ProjectStatus(c.DefaultQuery("status", string(models.ProjectStatusPending))))
}

// ListByStatus returns a handler pinned to one moderation state
func (h *AdminHandler) ListByStatus(status models.ProjectStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.listByStatus(c, status)
	}
}

func (h *AdminHandler) listByStatus(c *gin.Context, status models.ProjectStatus) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	projects, total, err := h.moderationService.ListByStatus(identity, status, filter, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectListResponse(dto.ToProjectDTOs(projects), total, params))
}

// ApproveProject moves a project to approved
func (h *AdminHandler) ApproveProject(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.moderationService.Approve(identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDTO(*project)))
}

// RejectProject moves a project to rejected with an optional reason
func (h *AdminHandler) RejectProject(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	project, err := h.moderationService.Reject(identity, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDTO(*project)))
}

// AwardAchievement grants an achievement to a member
func (h *AdminHandler) AwardAchievement(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.AwardAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	achievement, err := h.achievementService.Award(identity, req.ToAwardInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToAchievementDTO(*achievement)))
}

// Stats returns project totals for the dashboard
func (h *AdminHandler) Stats(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	stats, err := h.moderationService.Stats(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(stats))
}
