package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/club-projects-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NewestFirst orders projects by creation time, most recent first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("projects.created_at DESC").Order("projects.id DESC")
}

// WithLikeCount selects the project columns plus the cardinality of its likes set.
func WithLikeCount(db *gorm.DB) *gorm.DB {
	return db.Select("projects.*, (SELECT COUNT(*) FROM project_likes WHERE project_likes.project_id = projects.id) AS like_count")
}

// WithOwnerSummary preloads only the public fields of a project's owner.
func WithOwnerSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Select("id", "full_name", "email", "avatar")
	})
}
