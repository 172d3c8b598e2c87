package dto

import (
	"time"

	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/services"
)

// MemberSummaryDTO is the public owner summary embedded in projects
type MemberSummaryDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// MemberDTO represents a member in API responses. It never carries the password hash.
type MemberDTO struct {
	ID         uint64      `json:"id"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Avatar     string      `json:"avatar"`
	Bio        string      `json:"bio"`
	Location   string      `json:"location"`
	Education  string      `json:"education"`
	Occupation string      `json:"occupation"`
	Skills     []string    `json:"skills"`
	Role       models.Role `json:"role"`
	IsActive   bool        `json:"isActive"`
	JoinDate   time.Time   `json:"joinDate"`
	LastLogin  *time.Time  `json:"lastLogin"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// AchievementDTO represents an achievement in API responses
type AchievementDTO struct {
	ID          uint64                     `json:"id"`
	MemberID    uint64                     `json:"memberId"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Badge       string                     `json:"badge,omitempty"`
	Category    models.AchievementCategory `json:"category"`
	Points      int                        `json:"points"`
	AwardedByID *uint64                    `json:"awardedBy,omitempty"`
	AwardedAt   time.Time                  `json:"awardedAt"`
}

// MemberProfileDTO is a member with metrics and achievements
type MemberProfileDTO struct {
	MemberDTO
	Metrics      services.MemberMetrics `json:"metrics"`
	Achievements []AchievementDTO       `json:"achievements,omitempty"`
}

// LeaderboardEntryDTO is one row of the leaderboard
type LeaderboardEntryDTO struct {
	Rank     int              `json:"rank"`
	Member   MemberSummaryDTO `json:"member"`
	Score    int64            `json:"score"`
	Projects int              `json:"projectCount"`
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after registration or login
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      MemberDTO `json:"user"`
}

// AwardAchievementRequest represents a new achievement
type AwardAchievementRequest struct {
	MemberID    uint64 `json:"memberId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Badge       string `json:"badge"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
}

// Conversion functions

// ToMemberSummaryDTO converts a Member model to its public summary
func ToMemberSummaryDTO(m models.Member) MemberSummaryDTO {
	return MemberSummaryDTO{
		ID:       m.ID,
		FullName: m.FullName,
		Email:    m.Email,
		Avatar:   m.Avatar,
	}
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(m models.Member) MemberDTO {
	skills := m.Skills
	if skills == nil {
		skills = []string{}
	}
	return MemberDTO{
		ID:         m.ID,
		FullName:   m.FullName,
		Email:      m.Email,
		Avatar:     m.Avatar,
		Bio:        m.Bio,
		Location:   m.Location,
		Education:  m.Education,
		Occupation: m.Occupation,
		Skills:     skills,
		Role:       m.Role,
		IsActive:   m.IsActive,
		JoinDate:   m.JoinDate,
		LastLogin:  m.LastLogin,
		CreatedAt:  m.CreatedAt,
	}
}

// ToAchievementDTO converts an Achievement model to AchievementDTO
func ToAchievementDTO(a models.Achievement) AchievementDTO {
	return AchievementDTO{
		ID:          a.ID,
		MemberID:    a.MemberID,
		Title:       a.Title,
		Description: a.Description,
		Badge:       a.Badge,
		Category:    a.Category,
		Points:      a.Points,
		AwardedByID: a.AwardedByID,
		AwardedAt:   a.AwardedAt,
	}
}

// ToAchievementDTOs converts a slice of achievements
func ToAchievementDTOs(achievements []models.Achievement) []AchievementDTO {
	result := make([]AchievementDTO, len(achievements))
	for i, a := range achievements {
		result[i] = ToAchievementDTO(a)
	}
	return result
}

// ToMemberProfileDTO converts a service profile to MemberProfileDTO
func ToMemberProfileDTO(p services.MemberProfile) MemberProfileDTO {
	return MemberProfileDTO{
		MemberDTO:    ToMemberDTO(*p.Member),
		Metrics:      p.Metrics,
		Achievements: ToAchievementDTOs(p.Achievements),
	}
}

// ToLeaderboardDTO converts leaderboard entries
func ToLeaderboardDTO(entries []services.LeaderboardEntry) []LeaderboardEntryDTO {
	result := make([]LeaderboardEntryDTO, len(entries))
	for i, e := range entries {
		result[i] = LeaderboardEntryDTO{
			Rank:     e.Rank,
			Member:   ToMemberSummaryDTO(e.Member),
			Score:    e.Score,
			Projects: e.Projects,
		}
	}
	return result
}

// ToAuthResponse converts a login session
func ToAuthResponse(s *services.Session) AuthResponse {
	return AuthResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      ToMemberDTO(*s.Member),
	}
}

// ToAwardInput converts the request into service input
func (r AwardAchievementRequest) ToAwardInput() services.AwardInput {
	return services.AwardInput{
		MemberID:    r.MemberID,
		Title:       r.Title,
		Description: r.Description,
		Badge:       r.Badge,
		Category:    r.Category,
		Points:      r.Points,
	}
}
