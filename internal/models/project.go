package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPending  ProjectStatus = "pending"
	ProjectStatusApproved ProjectStatus = "approved"
	ProjectStatusRejected ProjectStatus = "rejected"
)

// Valid reports whether s is a known moderation state.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusApproved, ProjectStatusRejected:
		return true
	}
	return false
}

// Categories lists the closed set of project categories.
var Categories = []string{
	"Web Development",
	"Mobile App",
	"Machine Learning",
	"Blockchain",
	"Cybersecurity",
	"IoT",
	"Game Development",
	"Data Science",
	"DevOps",
	"Other",
}

// IsCategory reports whether name is one of Categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Project struct {
	ID           uint64        `gorm:"primarykey" json:"id"`
	Title        string        `gorm:"type:varchar(100);not null;index" json:"title"`
	Description  string        `gorm:"type:text;not null" json:"description"`
	Category     string        `gorm:"type:varchar(50);not null;index:idx_projects_category_status,priority:1" json:"category"`
	GithubURL    string        `gorm:"type:varchar(500)" json:"github_url"`
	DemoURL      string        `gorm:"type:varchar(500)" json:"demo_url"`
	TeamMembers  []string      `gorm:"serializer:json" json:"team_members"`
	Technologies string        `gorm:"type:varchar(500);not null" json:"technologies"`
	Challenges   string        `gorm:"type:text" json:"challenges"`
	Achievements string        `gorm:"type:text" json:"achievements"`
	OwnerID      uint64        `gorm:"not null;index;<-:create" json:"owner_id"`
	Status       ProjectStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_projects_category_status,priority:2;index:idx_projects_status_created,priority:1" json:"status"`
	Views        int64         `gorm:"not null;default:0" json:"views"`
	Featured     bool          `gorm:"not null;default:false;index" json:"featured"`
	IsPublic     bool          `gorm:"not null" json:"is_public"`
	CreatedAt    time.Time     `gorm:"index:idx_projects_status_created,priority:2" json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// LikeCount is filled by queries that select it; it is never persisted.
	LikeCount int64 `gorm:"->;-:migration" json:"like_count"`

	// Relations
	Owner         Member        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tags          []ProjectTag  `gorm:"foreignKey:ProjectID" json:"tags,omitempty"`
	Likes         []ProjectLike `gorm:"foreignKey:ProjectID" json:"-"`
	Collaborators []Member      `gorm:"many2many:project_collaborators" json:"collaborators,omitempty"`
}

// TagNames returns the tag names in insertion order.
func (p Project) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		names[i] = t.Name
	}
	return names
}
