package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/repository"
)

// AchievementService awards achievements to members
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	memberRepo      repository.MemberRepository
	now             func() time.Time
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(achievementRepo repository.AchievementRepository, memberRepo repository.MemberRepository) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		memberRepo:      memberRepo,
		now:             time.Now,
	}
}

// AwardInput describes a new achievement.
type AwardInput struct {
	MemberID    uint64 `json:"memberId" validate:"required"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	Badge       string `json:"badge" validate:"omitempty,http_url,max=500"`
	Category    string `json:"category" validate:"required,achievement_category"`
	Points      int    `json:"points" validate:"min=0,max=1000"`
}

// Award records an achievement. Admins and moderators only.
func (s *AchievementService) Award(actor auth.Identity, input AwardInput) (*models.Achievement, error) {
	if !actor.HasRole(models.RoleAdmin, models.RoleModerator) {
		return nil, ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Badge = strings.TrimSpace(input.Badge)
	input.Category = strings.ToLower(strings.TrimSpace(input.Category))
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	if _, err := findMember(s.memberRepo, input.MemberID); err != nil {
		return nil, err
	}

	awardedBy := actor.MemberID
	achievement := &models.Achievement{
		MemberID:    input.MemberID,
		Title:       input.Title,
		Description: input.Description,
		Badge:       input.Badge,
		Category:    models.AchievementCategory(input.Category),
		Points:      input.Points,
		AwardedByID: &awardedBy,
		AwardedAt:   s.now().UTC(),
	}

	if err := s.achievementRepo.Create(achievement); err != nil {
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}
	return achievement, nil
}
