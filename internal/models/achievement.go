package models

import "time"

type AchievementCategory string

const (
	AchievementParticipation AchievementCategory = "participation"
	AchievementExcellence    AchievementCategory = "excellence"
	AchievementInnovation    AchievementCategory = "innovation"
	AchievementLeadership    AchievementCategory = "leadership"
	AchievementCommunity     AchievementCategory = "community"
	AchievementMilestone     AchievementCategory = "milestone"
)

// Valid reports whether c is a known achievement category.
func (c AchievementCategory) Valid() bool {
	switch c {
	case AchievementParticipation, AchievementExcellence, AchievementInnovation,
		AchievementLeadership, AchievementCommunity, AchievementMilestone:
		return true
	}
	return false
}

type Achievement struct {
	ID          uint64              `gorm:"primarykey" json:"id"`
	MemberID    uint64              `gorm:"not null;index" json:"member_id"`
	Title       string              `gorm:"type:varchar(100);not null" json:"title"`
	Description string              `gorm:"type:varchar(500);not null" json:"description"`
	Badge       string              `gorm:"type:varchar(500)" json:"badge"`
	Category    AchievementCategory `gorm:"type:varchar(20);not null;default:'participation';index" json:"category"`
	Points      int                 `gorm:"not null;default:0" json:"points"`
	AwardedByID *uint64             `json:"awarded_by_id"`
	AwardedAt   time.Time           `gorm:"not null;index" json:"awarded_at"`
	CreatedAt   time.Time           `json:"created_at"`
}
