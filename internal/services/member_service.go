package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/query"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"gorm.io/gorm"
)

// MemberService handles member profiles, metrics and the leaderboard
type MemberService struct {
	memberRepo      repository.MemberRepository
	projectRepo     repository.ProjectRepository
	achievementRepo repository.AchievementRepository
	now             func() time.Time
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repository.MemberRepository, projectRepo repository.ProjectRepository, achievementRepo repository.AchievementRepository) *MemberService {
	return &MemberService{
		memberRepo:      memberRepo,
		projectRepo:     projectRepo,
		achievementRepo: achievementRepo,
		now:             time.Now,
	}
}

// MemberProfile is a member with their derived metrics.
type MemberProfile struct {
	Member       *models.Member
	Metrics      MemberMetrics
	Achievements []models.Achievement
}

// GetMember retrieves a member by ID
func (s *MemberService) GetMember(id uint64) (*models.Member, error) {
	return findMember(s.memberRepo, id)
}

func findMember(repo repository.MemberRepository, id uint64) (*models.Member, error) {
	member, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// GetProfile returns a member with metrics and achievements
func (s *MemberService) GetProfile(id uint64) (*MemberProfile, error) {
	member, err := s.GetMember(id)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByOwner(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load member projects: %w", err)
	}

	achievements, err := s.achievementRepo.ListByMember(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}

	return &MemberProfile{
		Member:       member,
		Metrics:      CalculateMemberMetrics(*member, projects, s.now()),
		Achievements: achievements,
	}, nil
}

// ListProfiles returns every member with metrics. Admin only.
func (s *MemberService) ListProfiles(actor auth.Identity) ([]MemberProfile, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	members, err := s.memberRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	projects, err := s.projectRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	now := s.now()
	profiles := make([]MemberProfile, len(members))
	for i := range members {
		profiles[i] = MemberProfile{
			Member:  &members[i],
			Metrics: CalculateMemberMetrics(members[i], projects, now),
		}
	}
	return profiles, nil
}

// MemberProjects lists a member's projects. The member and admins see every
// status, everyone else only approved projects.
func (s *MemberService) MemberProjects(viewer auth.Identity, memberID uint64) ([]models.Project, error) {
	if _, err := s.GetMember(memberID); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByOwner(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member projects: %w", err)
	}
	if viewer.CanManage(memberID) {
		return projects, nil
	}

	public := query.Public(query.Filter{})
	visible := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if public.Matches(p) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// Achievements lists a member's achievements, most recent first
func (s *MemberService) Achievements(memberID uint64) ([]models.Achievement, error) {
	if _, err := s.GetMember(memberID); err != nil {
		return nil, err
	}

	achievements, err := s.achievementRepo.ListByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

// Leaderboard ranks active members by their project score
func (s *MemberService) Leaderboard() ([]LeaderboardEntry, error) {
	members, err := s.memberRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	projects, err := s.projectRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	active := make([]models.Member, 0, len(members))
	for _, m := range members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return BuildLeaderboard(active, projects), nil
}
