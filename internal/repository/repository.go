package repository

import (
	"time"

	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/query"
	"github.com/yukikurage/club-projects-api/internal/utils"
)

// Preload names understood by ProjectRepository.FindByID.
const (
	PreloadOwner         = "Owner"
	PreloadTags          = "Tags"
	PreloadCollaborators = "Collaborators"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project with its tags and collaborators
	Create(project *models.Project) error

	// FindByID finds a project by ID with its like count and optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves one page of projects matching the predicate, newest first
	List(pred query.Predicate, params utils.PaginationParams) ([]models.Project, int64, error)

	// ListByOwner lists a member's projects, newest first, optionally limited to some statuses
	ListByOwner(ownerID uint64, statuses ...models.ProjectStatus) ([]models.Project, error)

	// ListAll lists every project with its like count
	ListAll() ([]models.Project, error)

	// Related lists approved projects of a category, excluding one project
	Related(excludeID uint64, category string, limit int) ([]models.Project, error)

	// Update writes the editable columns and replaces tags and collaborators
	Update(project *models.Project) error

	// UpdateStatus sets the moderation status
	UpdateStatus(id uint64, status models.ProjectStatus) error

	// IncrementViews atomically adds one to the view counter
	IncrementViews(id uint64) error

	// Delete removes a project together with its tags, likes and collaborator links
	Delete(id uint64) error

	// ToggleLike adds or removes a member from the likes set
	ToggleLike(projectID, memberID uint64) (liked bool, likeCount int64, err error)
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member
	Create(member *models.Member) error

	// FindByID finds a member by ID
	FindByID(id uint64) (*models.Member, error)

	// FindByIDs finds every member in ids; missing ids are skipped
	FindByIDs(ids []uint64) ([]models.Member, error)

	// FindByEmail finds a member by normalized email
	FindByEmail(email string) (*models.Member, error)

	// List lists all members, newest first
	List() ([]models.Member, error)

	// TouchLastLogin stamps the member's last login time
	TouchLastLogin(id uint64, at time.Time) error
}

// AchievementRepository defines the interface for achievement data access
type AchievementRepository interface {
	// Create creates a new achievement
	Create(achievement *models.Achievement) error

	// ListByMember lists a member's achievements, most recent first
	ListByMember(memberID uint64) ([]models.Achievement, error)
}
