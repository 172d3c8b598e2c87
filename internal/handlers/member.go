package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/club-projects-api/internal/dto"
	"github.com/yukikurage/club-projects-api/internal/services"
)

// MemberHandler serves member profiles and the leaderboard
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Leaderboard ranks active members by project score
func (h *MemberHandler) Leaderboard(c *gin.Context) {
	entries, err := h.memberService.Leaderboard()
	if err != nil {
		respondError(c, err)
		return
	}

	board := dto.ToLeaderboardDTO(entries)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(board), "data": board})
}

// ListMembers returns every member with metrics. Admin only.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	profiles, err := h.memberService.ListProfiles(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]dto.MemberProfileDTO, len(profiles))
	for i, p := range profiles {
		result[i] = dto.ToMemberProfileDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(result), "data": result})
}

// GetMember returns a member profile with metrics and achievements
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	profile, err := h.memberService.GetProfile(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToMemberProfileDTO(*profile)))
}

// MemberProjects lists a member's projects visible to the caller
func (h *MemberHandler) MemberProjects(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	projects, err := h.memberService.MemberProjects(identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	result := dto.ToProjectDTOs(projects)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(result), "data": result})
}

// MemberAchievements lists a member's achievements
func (h *MemberHandler) MemberAchievements(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	achievements, err := h.memberService.Achievements(id)
	if err != nil {
		respondError(c, err)
		return
	}

	result := dto.ToAchievementDTOs(achievements)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(result), "data": result})
}
