package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type Member struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FullName     string         `gorm:"type:varchar(100);not null;index" json:"full_name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Avatar       string         `gorm:"type:varchar(500)" json:"avatar"`
	Bio          string         `gorm:"type:varchar(500)" json:"bio"`
	Location     string         `gorm:"type:varchar(100)" json:"location"`
	Education    string         `gorm:"type:varchar(200)" json:"education"`
	Occupation   string         `gorm:"type:varchar(100)" json:"occupation"`
	Skills       []string       `gorm:"serializer:json" json:"skills"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'member';index" json:"role"`
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`
	JoinDate     time.Time      `gorm:"not null;<-:create" json:"join_date"`
	LastLogin    *time.Time     `json:"last_login"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects     []Project     `gorm:"foreignKey:OwnerID" json:"-"`
	Achievements []Achievement `gorm:"foreignKey:MemberID" json:"-"`
}

// BeforeCreate stamps the join date when the caller did not.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.JoinDate.IsZero() {
		m.JoinDate = time.Now()
	}
	if m.Role == "" {
		m.Role = RoleMember
	}
	return nil
}
