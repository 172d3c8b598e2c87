package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/constants"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/notify"
	"github.com/yukikurage/club-projects-api/internal/query"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"github.com/yukikurage/club-projects-api/internal/scoring"
	"github.com/yukikurage/club-projects-api/internal/utils"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	memberRepo   repository.MemberRepository
	notifier     notify.Notifier
	relatedLimit int
	now          func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, memberRepo repository.MemberRepository, notifier notify.Notifier) *ProjectService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &ProjectService{
		projectRepo:  projectRepo,
		memberRepo:   memberRepo,
		notifier:     notifier,
		relatedLimit: constants.DefaultRelatedLimit,
		now:          time.Now,
	}
}

// ProjectInput holds every writable project field.
type ProjectInput struct {
	Title           string   `json:"title" validate:"required,min=5,max=100"`
	Description     string   `json:"description" validate:"required,min=50,max=2000"`
	Category        string   `json:"category" validate:"required,category"`
	Tags            []string `json:"tags" validate:"max=20,dive,max=30"`
	GithubURL       string   `json:"githubUrl" validate:"omitempty,http_url,max=500"`
	DemoURL         string   `json:"demoUrl" validate:"omitempty,http_url,max=500"`
	TeamMembers     []string `json:"teamMembers" validate:"max=20,dive,max=100"`
	Technologies    string   `json:"technologies" validate:"required,max=500"`
	Challenges      string   `json:"challenges" validate:"max=2000"`
	Achievements    string   `json:"achievements" validate:"max=2000"`
	IsPublic        *bool    `json:"isPublic"`
	CollaboratorIDs []uint64 `json:"collaborators" validate:"max=20"`
}

// ProjectPatch holds a partial update. Nil fields are left unchanged.
type ProjectPatch struct {
	Title           *string
	Description     *string
	Category        *string
	Tags            *[]string
	GithubURL       *string
	DemoURL         *string
	TeamMembers     *[]string
	Technologies    *string
	Challenges      *string
	Achievements    *string
	IsPublic        *bool
	CollaboratorIDs *[]uint64
}

// ProjectDetail is a single project enriched for display.
type ProjectDetail struct {
	Project         *models.Project
	EngagementScore float64
	Related         []models.Project
}

// ListProjects returns one page of approved projects matching the filter
func (s *ProjectService) ListProjects(filter query.Filter, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(query.Public(filter), params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject fetches a project, counts the view and attaches its engagement
// score and related projects. Projects that are not approved are only
// visible to their owner and admins.
func (s *ProjectService) GetProject(id uint64, viewer *auth.Identity) (*ProjectDetail, error) {
	project, err := s.findProject(id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(project, viewer) {
		return nil, ErrProjectNotFound
	}

	if err := s.projectRepo.IncrementViews(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to count view: %w", err)
	}

	project, err = s.findProject(id, repository.PreloadOwner, repository.PreloadTags, repository.PreloadCollaborators)
	if err != nil {
		return nil, err
	}

	related, err := s.projectRepo.Related(project.ID, project.Category, s.relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find related projects: %w", err)
	}

	return &ProjectDetail{
		Project:         project,
		EngagementScore: EngagementOf(project, s.now()),
		Related:         related,
	}, nil
}

// CreateProject validates the input and stores a new pending project owned by the actor
func (s *ProjectService) CreateProject(actor auth.Identity, input ProjectInput) (*models.Project, error) {
	input = normalizeProjectInput(input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	collaborators, err := s.resolveCollaborators(input.CollaboratorIDs)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		OwnerID:       actor.MemberID,
		Status:        models.ProjectStatusPending,
		IsPublic:      true,
		Collaborators: collaborators,
	}
	applyProjectInput(project, input)

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.findProject(project.ID, repository.PreloadOwner, repository.PreloadTags, repository.PreloadCollaborators)
}

// UpdateProject applies a patch. Only the owner or an admin may update, and
// the status is never touched.
func (s *ProjectService) UpdateProject(actor auth.Identity, id uint64, patch ProjectPatch) (*models.Project, error) {
	project, err := s.findProject(id, repository.PreloadTags, repository.PreloadCollaborators)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(project.OwnerID) {
		return nil, ErrForbidden
	}

	input := normalizeProjectInput(patch.applyTo(inputFromProject(project)))
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	if patch.CollaboratorIDs != nil {
		collaborators, err := s.resolveCollaborators(input.CollaboratorIDs)
		if err != nil {
			return nil, err
		}
		project.Collaborators = collaborators
	}
	applyProjectInput(project, input)

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.findProject(id, repository.PreloadOwner, repository.PreloadTags, repository.PreloadCollaborators)
}

// DeleteProject removes a project. Only the owner or an admin may delete.
func (s *ProjectService) DeleteProject(actor auth.Identity, id uint64) error {
	project, err := s.findProject(id)
	if err != nil {
		return err
	}
	if !actor.CanManage(project.OwnerID) {
		return ErrForbidden
	}

	if err := s.projectRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// LikeResult reports the actor's membership in the likes set after a toggle.
type LikeResult struct {
	Liked     bool
	LikeCount int64
}

// ToggleLike adds the actor to the project's likes, or removes them if present.
// The owner is notified when someone else likes the project.
func (s *ProjectService) ToggleLike(actor auth.Identity, id uint64) (*LikeResult, error) {
	project, err := s.findProject(id, repository.PreloadOwner)
	if err != nil {
		return nil, err
	}
	if !visibleTo(project, &actor) {
		return nil, ErrProjectNotFound
	}

	liked, count, err := s.projectRepo.ToggleLike(id, actor.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	if liked && project.OwnerID != actor.MemberID {
		s.notifyLiked(project, actor.MemberID)
	}

	return &LikeResult{Liked: liked, LikeCount: count}, nil
}

func (s *ProjectService) notifyLiked(project *models.Project, likerID uint64) {
	likerName := "A club member"
	if liker, err := s.memberRepo.FindByID(likerID); err == nil {
		likerName = liker.FullName
	}

	s.notifier.Notify(notify.Message{
		Kind:          notify.KindProjectLiked,
		RecipientMail: project.Owner.Email,
		RecipientName: project.Owner.FullName,
		ProjectTitle:  project.Title,
		ActorName:     likerName,
	})
}

func (s *ProjectService) findProject(id uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) resolveCollaborators(ids []uint64) ([]models.Member, error) {
	ids = uniqueUint64(ids)
	if len(ids) == 0 {
		return []models.Member{}, nil
	}

	members, err := s.memberRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify collaborators: %w", err)
	}
	if len(members) != len(ids) {
		return nil, fieldError("collaborators", "contains an unknown member")
	}
	return members, nil
}

// EngagementOf scores a loaded project.
func EngagementOf(p *models.Project, now time.Time) float64 {
	return scoring.Engagement(scoring.EngagementInput{
		Likes:     p.LikeCount,
		Views:     p.Views,
		Featured:  p.Featured,
		CreatedAt: p.CreatedAt,
	}, now)
}

func visibleTo(p *models.Project, viewer *auth.Identity) bool {
	if p.Status == models.ProjectStatusApproved {
		return true
	}
	return viewer != nil && viewer.CanManage(p.OwnerID)
}

func normalizeProjectInput(in ProjectInput) ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.GithubURL = strings.TrimSpace(in.GithubURL)
	in.DemoURL = strings.TrimSpace(in.DemoURL)
	in.Technologies = strings.TrimSpace(in.Technologies)
	in.Challenges = strings.TrimSpace(in.Challenges)
	in.Achievements = strings.TrimSpace(in.Achievements)

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]struct{}, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	in.Tags = tags

	team := make([]string, 0, len(in.TeamMembers))
	for _, m := range in.TeamMembers {
		if m = strings.TrimSpace(m); m != "" {
			team = append(team, m)
		}
	}
	in.TeamMembers = team

	return in
}

func applyProjectInput(p *models.Project, in ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.GithubURL = in.GithubURL
	p.DemoURL = in.DemoURL
	p.TeamMembers = in.TeamMembers
	p.Technologies = in.Technologies
	p.Challenges = in.Challenges
	p.Achievements = in.Achievements
	if in.IsPublic != nil {
		p.IsPublic = *in.IsPublic
	}

	p.Tags = make([]models.ProjectTag, len(in.Tags))
	for i, t := range in.Tags {
		p.Tags[i] = models.ProjectTag{ProjectID: p.ID, Name: t}
	}
}

func inputFromProject(p *models.Project) ProjectInput {
	isPublic := p.IsPublic
	ids := make([]uint64, len(p.Collaborators))
	for i, c := range p.Collaborators {
		ids[i] = c.ID
	}
	return ProjectInput{
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		Tags:            p.TagNames(),
		GithubURL:       p.GithubURL,
		DemoURL:         p.DemoURL,
		TeamMembers:     p.TeamMembers,
		Technologies:    p.Technologies,
		Challenges:      p.Challenges,
		Achievements:    p.Achievements,
		IsPublic:        &isPublic,
		CollaboratorIDs: ids,
	}
}

func (patch ProjectPatch) applyTo(in ProjectInput) ProjectInput {
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Category != nil {
		in.Category = *patch.Category
	}
	if patch.Tags != nil {
		in.Tags = *patch.Tags
	}
	if patch.GithubURL != nil {
		in.GithubURL = *patch.GithubURL
	}
	if patch.DemoURL != nil {
		in.DemoURL = *patch.DemoURL
	}
	if patch.TeamMembers != nil {
		in.TeamMembers = *patch.TeamMembers
	}
	if patch.Technologies != nil {
		in.Technologies = *patch.Technologies
	}
	if patch.Challenges != nil {
		in.Challenges = *patch.Challenges
	}
	if patch.Achievements != nil {
		in.Achievements = *patch.Achievements
	}
	if patch.IsPublic != nil {
		in.IsPublic = patch.IsPublic
	}
	if patch.CollaboratorIDs != nil {
		in.CollaboratorIDs = *patch.CollaboratorIDs
	}
	return in
}

func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
