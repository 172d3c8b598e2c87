package repository

import (
	"time"

	"github.com/yukikurage/club-projects-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDs finds every member in ids
func (r *GormMemberRepository) FindByIDs(ids []uint64) ([]models.Member, error) {
	members := []models.Member{}
	if len(ids) == 0 {
		return members, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindByEmail finds a member by normalized email
func (r *GormMemberRepository) FindByEmail(email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists all members, newest first
func (r *GormMemberRepository) List() ([]models.Member, error) {
	members := []models.Member{}
	if err := r.db.Order("created_at DESC").Order("id DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// TouchLastLogin stamps the member's last login time
func (r *GormMemberRepository) TouchLastLogin(id uint64, at time.Time) error {
	return r.db.Model(&models.Member{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}
