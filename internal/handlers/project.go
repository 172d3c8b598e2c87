package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/dto"
	apierrors "github.com/yukikurage/club-projects-api/internal/errors"
	"github.com/yukikurage/club-projects-api/internal/middleware"
	"github.com/yukikurage/club-projects-api/internal/query"
	"github.com/yukikurage/club-projects-api/internal/services"
	"github.com/yukikurage/club-projects-api/internal/storage"
	"github.com/yukikurage/club-projects-api/internal/utils"
)

// ProjectHandler serves the public project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	store          *storage.DiskStore
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService, store *storage.DiskStore) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		store:          store,
	}
}

// ListProjects returns a page of approved projects
// Supports category, search, tags, technology, startDate and endDate filters
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(filter, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectListResponse(dto.ToProjectDTOs(projects), total, params))
}

// GetProject returns one project with its engagement score and related projects
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var viewer *auth.Identity
	if identity, ok := middleware.GetIdentity(c); ok {
		viewer = &identity
	}

	detail, err := h.projectService.GetProject(id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDetailDTO(detail)))
}

// CreateProject submits a new project for moderation
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(identity, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToProjectDTO(*project)))
}

// UpdateProject edits a project. Owner or admin only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.ProjectPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(identity, id, req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDTO(*project)))
}

// DeleteProject removes a project. Owner or admin only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(identity, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("Project deleted"))
}

// ToggleLike likes or unlikes a project for the caller
func (h *ProjectHandler) ToggleLike(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	result, err := h.projectService.ToggleLike(identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.LikeDTO{Liked: result.Liked, Likes: result.LikeCount}))
}

// UploadFile stores a multipart attachment and returns its metadata
func (h *ProjectHandler) UploadFile(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if limit := h.store.MaxBytes(); limit > 0 {
		// Leave room for the multipart framing around the file itself.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			respondError(c, storage.ErrFileTooLarge)
			return
		}
		respondError(c, storage.ErrNoFile)
		return
	}

	meta, err := h.store.Save(fh, identity.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "File uploaded successfully", Data: meta})
}

func projectListResponse(projects []dto.ProjectDTO, total int64, params utils.PaginationParams) dto.ListResponse {
	return dto.ListResponse{
		Success:    true,
		Count:      len(projects),
		Page:       params.Page,
		Total:      total,
		TotalPages: utils.TotalPages(total, params.Limit),
		Data:       projects,
	}
}

// bindFilter reads the listing filters from the query string.
func bindFilter(c *gin.Context) (query.Filter, bool) {
	filter := query.Filter{
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		Tags:       append(c.QueryArray("tags"), c.QueryArray("tag")...),
		Technology: c.Query("technology"),
	}

	start, err := parseDate(c.Query("startDate"), false)
	if err != nil {
		apierrors.BadRequest(c, "Invalid startDate")
		return query.Filter{}, false
	}
	end, err := parseDate(c.Query("endDate"), true)
	if err != nil {
		apierrors.BadRequest(c, "Invalid endDate")
		return query.Filter{}, false
	}
	filter.StartDate = start
	filter.EndDate = end

	return filter, true
}

// parseDate accepts RFC 3339 timestamps or plain dates. A plain end date
// covers the whole day.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
