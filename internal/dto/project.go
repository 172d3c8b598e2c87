package dto

import (
	"time"

	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/services"
)

// ProjectDTO represents a project in API responses. Likes are reported as a count.
type ProjectDTO struct {
	ID            uint64               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Tags          []string             `json:"tags"`
	GithubURL     string               `json:"githubUrl,omitempty"`
	DemoURL       string               `json:"demoUrl,omitempty"`
	TeamMembers   []string             `json:"teamMembers"`
	Technologies  string               `json:"technologies"`
	Challenges    string               `json:"challenges,omitempty"`
	Achievements  string               `json:"achievements,omitempty"`
	Owner         *MemberSummaryDTO    `json:"owner,omitempty"`
	Collaborators []MemberSummaryDTO   `json:"collaborators,omitempty"`
	Status        models.ProjectStatus `json:"status"`
	Likes         int64                `json:"likes"`
	Views         int64                `json:"views"`
	Featured      bool                 `json:"featured"`
	IsPublic      bool                 `json:"isPublic"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ProjectDetailDTO is a single project with engagement data
type ProjectDetailDTO struct {
	ProjectDTO
	EngagementScore float64      `json:"engagementScore"`
	Related         []ProjectDTO `json:"relatedProjects"`
}

// LikeDTO reports the caller's like state after a toggle
type LikeDTO struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// ProjectRequest represents the body of a create request
type ProjectRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Tags          []string `json:"tags"`
	GithubURL     string   `json:"githubUrl"`
	DemoURL       string   `json:"demoUrl"`
	TeamMembers   []string `json:"teamMembers"`
	Technologies  string   `json:"technologies" binding:"required"`
	Challenges    string   `json:"challenges"`
	Achievements  string   `json:"achievements"`
	IsPublic      *bool    `json:"isPublic"`
	Collaborators []uint64 `json:"collaborators"`
}

// ProjectPatchRequest represents the body of an update request. Absent
// fields are left unchanged; status and owner cannot be sent.
type ProjectPatchRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	GithubURL     *string   `json:"githubUrl"`
	DemoURL       *string   `json:"demoUrl"`
	TeamMembers   *[]string `json:"teamMembers"`
	Technologies  *string   `json:"technologies"`
	Challenges    *string   `json:"challenges"`
	Achievements  *string   `json:"achievements"`
	IsPublic      *bool     `json:"isPublic"`
	Collaborators *[]uint64 `json:"collaborators"`
}

// RejectRequest carries an optional rejection reason
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ToInput converts the request into service input
func (r ProjectRequest) ToInput() services.ProjectInput {
	return services.ProjectInput{
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Tags:            r.Tags,
		GithubURL:       r.GithubURL,
		DemoURL:         r.DemoURL,
		TeamMembers:     r.TeamMembers,
		Technologies:    r.Technologies,
		Challenges:      r.Challenges,
		Achievements:    r.Achievements,
		IsPublic:        r.IsPublic,
		CollaboratorIDs: r.Collaborators,
	}
}

// ToPatch converts the request into a service patch
func (r ProjectPatchRequest) ToPatch() services.ProjectPatch {
	return services.ProjectPatch{
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Tags:            r.Tags,
		GithubURL:       r.GithubURL,
		DemoURL:         r.DemoURL,
		TeamMembers:     r.TeamMembers,
		Technologies:    r.Technologies,
		Challenges:      r.Challenges,
		Achievements:    r.Achievements,
		IsPublic:        r.IsPublic,
		CollaboratorIDs: r.Collaborators,
	}
}

// Conversion functions

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(p models.Project) ProjectDTO {
	team := p.TeamMembers
	if team == nil {
		team = []string{}
	}
	dto := ProjectDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Tags:         p.TagNames(),
		GithubURL:    p.GithubURL,
		DemoURL:      p.DemoURL,
		TeamMembers:  team,
		Technologies: p.Technologies,
		Challenges:   p.Challenges,
		Achievements: p.Achievements,
		Status:       p.Status,
		Likes:        p.LikeCount,
		Views:        p.Views,
		Featured:     p.Featured,
		IsPublic:     p.IsPublic,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Owner.ID != 0 {
		owner := ToMemberSummaryDTO(p.Owner)
		dto.Owner = &owner
	}
	for _, c := range p.Collaborators {
		dto.Collaborators = append(dto.Collaborators, ToMemberSummaryDTO(c))
	}
	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	result := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		result[i] = ToProjectDTO(p)
	}
	return result
}

// ToProjectDetailDTO converts an enriched project
func ToProjectDetailDTO(d *services.ProjectDetail) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO:      ToProjectDTO(*d.Project),
		EngagementScore: d.EngagementScore,
		Related:         ToProjectDTOs(d.Related),
	}
}
