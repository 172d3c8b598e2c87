package repository

import (
	"github.com/yukikurage/club-projects-api/internal/models"
	"gorm.io/gorm"
)

// GormAchievementRepository is a GORM implementation of AchievementRepository
type GormAchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &GormAchievementRepository{db: db}
}

// Create creates a new achievement
func (r *GormAchievementRepository) Create(achievement *models.Achievement) error {
	return r.db.Create(achievement).Error
}

// ListByMember lists a member's achievements, most recent first
func (r *GormAchievementRepository) ListByMember(memberID uint64) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	if err := r.db.Where("member_id = ?", memberID).
		Order("awarded_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}
