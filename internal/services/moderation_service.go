package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/constants"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/notify"
	"github.com/yukikurage/club-projects-api/internal/query"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"github.com/yukikurage/club-projects-api/internal/utils"
	"gorm.io/gorm"
)

// ModerationService moves projects between moderation states
type ModerationService struct {
	projectRepo repository.ProjectRepository
	notifier    notify.Notifier
}

// NewModerationService creates a new ModerationService
func NewModerationService(projectRepo repository.ProjectRepository, notifier notify.Notifier) *ModerationService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &ModerationService{
		projectRepo: projectRepo,
		notifier:    notifier,
	}
}

// ListByStatus returns one page of projects in the given moderation state
func (s *ModerationService) ListByStatus(actor auth.Identity, status models.ProjectStatus, filter query.Filter, params utils.PaginationParams) ([]models.Project, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	if !status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	projects, total, err := s.projectRepo.List(query.Moderation(status, filter), params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s projects: %w", status, err)
	}
	return projects, total, nil
}

// Approve marks a project approved and notifies its owner
func (s *ModerationService) Approve(actor auth.Identity, id uint64) (*models.Project, error) {
	return s.transition(actor, id, models.ProjectStatusApproved, "")
}

// Reject marks a project rejected and notifies its owner with the reason.
// An empty reason falls back to the default rejection reason.
func (s *ModerationService) Reject(actor auth.Identity, id uint64, reason string) (*models.Project, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = constants.DefaultRejectionReason
	}
	return s.transition(actor, id, models.ProjectStatusRejected, reason)
}

// transition writes the target status even when the project already holds it,
// and notifies on every call.
func (s *ModerationService) transition(actor auth.Identity, id uint64, target models.ProjectStatus, reason string) (*models.Project, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(id, repository.PreloadOwner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.UpdateStatus(id, target); err != nil {
		return nil, fmt.Errorf("failed to set project status: %w", err)
	}
	project.Status = target

	msg := notify.Message{
		Kind:          notify.KindProjectApproved,
		RecipientMail: project.Owner.Email,
		RecipientName: project.Owner.FullName,
		ProjectTitle:  project.Title,
	}
	if target == models.ProjectStatusRejected {
		msg.Kind = notify.KindProjectRejected
		msg.Reason = reason
	}
	s.notifier.Notify(msg)

	return project, nil
}

// ProjectStats summarizes every project in the store.
type ProjectStats struct {
	Total             int                          `json:"total"`
	ByStatus          map[models.ProjectStatus]int `json:"byStatus"`
	ByCategory        map[string]int               `json:"byCategory"`
	TotalViews        int64                        `json:"totalViews"`
	TotalLikes        int64                        `json:"totalLikes"`
	FeaturedCount     int                          `json:"featuredCount"`
	AverageEngagement float64                      `json:"averageEngagement"`
}

// Stats aggregates project totals for the admin dashboard
func (s *ModerationService) Stats(actor auth.Identity) (*ProjectStats, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	projects, err := s.projectRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return CalculateProjectStats(projects), nil
}

// CalculateProjectStats folds projects into dashboard totals.
func CalculateProjectStats(projects []models.Project) *ProjectStats {
	stats := &ProjectStats{
		Total: len(projects),
		ByStatus: map[models.ProjectStatus]int{
			models.ProjectStatusPending:  0,
			models.ProjectStatusApproved: 0,
			models.ProjectStatusRejected: 0,
		},
		ByCategory: map[string]int{},
	}

	for _, p := range projects {
		stats.ByStatus[p.Status]++
		stats.ByCategory[p.Category]++
		stats.TotalViews += p.Views
		stats.TotalLikes += p.LikeCount
		if p.Featured {
			stats.FeaturedCount++
		}
	}
	if stats.Total > 0 {
		stats.AverageEngagement = float64(stats.TotalViews) / float64(stats.Total)
	}
	return stats
}
