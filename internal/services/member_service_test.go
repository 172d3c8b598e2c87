package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/club-projects-api/internal/models"
)

func TestMemberService_MemberProjectsVisibility(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMemberService(env.members, env.projects, env.achievements)
	owner, ownerID := env.member(t, "Olivia Owner", models.RoleMember)
	_, stranger := env.member(t, "Sam Stranger", models.RoleMember)
	_, admin := env.member(t, "Ada Admin", models.RoleAdmin)
	env.project(t, owner, "Approved One", models.ProjectStatusApproved)
	env.project(t, owner, "Pending One", models.ProjectStatusPending)
	env.project(t, owner, "Rejected One", models.ProjectStatusRejected)

	mine, err := svc.MemberProjects(ownerID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	asAdmin, err := svc.MemberProjects(admin, owner.ID)
	require.NoError(t, err)
	assert.Len(t, asAdmin, 3)

	public, err := svc.MemberProjects(stranger, owner.ID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Approved One", public[0].Title)

	_, err = svc.MemberProjects(stranger, 5555)
	assert.True(t, errors.Is(err, ErrMemberNotFound))
}

func TestMemberService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMemberService(env.members, env.projects, env.achievements)
	owner, _ := env.member(t, "Olivia Owner", models.RoleMember)
	env.project(t, owner, "Approved One", models.ProjectStatusApproved, func(p *models.Project) { p.Views = 40 })
	env.project(t, owner, "Pending One", models.ProjectStatusPending)
	require.NoError(t, env.achievements.Create(&models.Achievement{
		MemberID: owner.ID, Title: "First Project", Description: "Shipped a project",
		Category: models.AchievementMilestone, Points: 50, AwardedAt: time.Now().UTC(),
	}))

	profile, err := svc.GetProfile(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, profile.Member.ID)
	assert.Equal(t, 2, profile.Metrics.TotalProjects)
	assert.Equal(t, 1, profile.Metrics.ApprovedProjects)
	assert.Equal(t, int64(40), profile.Metrics.TotalViews)
	assert.Equal(t, 20.0, profile.Metrics.AverageEngagement)
	assert.Len(t, profile.Achievements, 1)

	_, err = svc.GetProfile(999)
	assert.True(t, errors.Is(err, ErrMemberNotFound))
}

func TestMemberService_Leaderboard(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMemberService(env.members, env.projects, env.achievements)
	star, _ := env.member(t, "Star Builder", models.RoleMember)
	env.member(t, "Quiet Member", models.RoleMember)
	gone, _ := env.member(t, "Gone Member", models.RoleMember)
	require.NoError(t, env.db.Model(&models.Member{}).Where("id = ?", gone.ID).Update("is_active", false).Error)

	env.project(t, star, "Hit", models.ProjectStatusApproved, func(p *models.Project) {
		p.Views = 25
		p.Featured = true
	})

	board, err := svc.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Star Builder", board[0].Member.FullName)
	assert.Equal(t, int64(2+10+5), board[0].Score)
	assert.Equal(t, "Quiet Member", board[1].Member.FullName)
	assert.Zero(t, board[1].Score)
}

func TestMemberService_ListProfilesAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMemberService(env.members, env.projects, env.achievements)
	_, member := env.member(t, "Max Member", models.RoleMember)
	_, admin := env.member(t, "Ada Admin", models.RoleAdmin)

	_, err := svc.ListProfiles(member)
	assert.True(t, errors.Is(err, ErrForbidden))

	profiles, err := svc.ListProfiles(admin)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}
