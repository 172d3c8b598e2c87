package models

import "time"

// ProjectLike is one element of a project's likes set. The composite key
// keeps a member from liking the same project twice.
type ProjectLike struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	MemberID  uint64    `gorm:"primarykey;index" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}
