package repository

import (
	"github.com/yukikurage/club-projects-api/internal/database"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/query"
	"github.com/yukikurage/club-projects-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// editableColumns are the only project columns an update may write.
// Status, owner, views and featured are deliberately absent.
var editableColumns = []string{
	"title",
	"description",
	"category",
	"github_url",
	"demo_url",
	"team_members",
	"technologies",
	"challenges",
	"achievements",
	"is_public",
	"updated_at",
}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project with its tags and collaborators
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with its like count and optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	q := r.db.Model(&models.Project{}).Scopes(database.WithLikeCount)

	for _, p := range preload {
		if p == PreloadOwner {
			q = q.Scopes(database.WithOwnerSummary)
			continue
		}
		q = q.Preload(p)
	}

	if err := q.Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves one page of projects matching the predicate, newest first
func (r *GormProjectRepository) List(pred query.Predicate, params utils.PaginationParams) ([]models.Project, int64, error) {
	base := r.db.Model(&models.Project{}).Scopes(pred.Scope()).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	if err := base.
		Scopes(database.WithLikeCount, database.WithOwnerSummary, database.NewestFirst, database.Paginate(params)).
		Preload(PreloadTags).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListByOwner lists a member's projects, newest first
func (r *GormProjectRepository) ListByOwner(ownerID uint64, statuses ...models.ProjectStatus) ([]models.Project, error) {
	q := r.db.Model(&models.Project{}).Where("projects.owner_id = ?", ownerID)
	if len(statuses) > 0 {
		q = q.Where("projects.status IN ?", statuses)
	}

	projects := []models.Project{}
	if err := q.Scopes(database.WithLikeCount, database.WithOwnerSummary, database.NewestFirst).
		Preload(PreloadTags).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListAll lists every project with its like count
func (r *GormProjectRepository) ListAll() ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.Model(&models.Project{}).
		Scopes(database.WithLikeCount, database.NewestFirst).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Related lists approved projects of a category, excluding one project
func (r *GormProjectRepository) Related(excludeID uint64, category string, limit int) ([]models.Project, error) {
	projects := []models.Project{}
	if limit <= 0 {
		return projects, nil
	}

	err := r.db.Model(&models.Project{}).
		Scopes(database.WithLikeCount, database.WithOwnerSummary).
		Where("projects.id <> ? AND projects.category = ? AND projects.status = ?", excludeID, category, models.ProjectStatusApproved).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update writes the editable columns and replaces tags and collaborators
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Select(editableColumns).Updates(project).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		if len(project.Tags) > 0 {
			for i := range project.Tags {
				project.Tags[i].ProjectID = project.ID
			}
			if err := tx.Create(&project.Tags).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Project{ID: project.ID}).Association("Collaborators").Replace(project.Collaborators)
	})
}

// UpdateStatus sets the moderation status
func (r *GormProjectRepository) UpdateStatus(id uint64, status models.ProjectStatus) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("status", status).Error
}

// IncrementViews atomically adds one to the view counter
func (r *GormProjectRepository) IncrementViews(id uint64) error {
	result := r.db.Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project together with its tags, likes and collaborator links
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{ID: id}).Association("Collaborators").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleLike removes the member's like if present, otherwise adds it.
// Each member's like is its own row, so toggles by different members
// never overwrite each other.
func (r *GormProjectRepository) ToggleLike(projectID, memberID uint64) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("project_id = ? AND member_id = ?", projectID, memberID).Delete(&models.ProjectLike{})
		if removed.Error != nil {
			return removed.Error
		}

		if removed.RowsAffected == 0 {
			like := models.ProjectLike{ProjectID: projectID, MemberID: memberID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&models.ProjectLike{}).Where("project_id = ?", projectID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}
