package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/club-projects-api/internal/models"
)

func TestBuildLeaderboard_ScoresAndRanks(t *testing.T) {
	first := models.Member{ID: 1, FullName: "Zero Projects"}
	second := models.Member{ID: 2, FullName: "Star Builder"}
	projects := []models.Project{
		{OwnerID: 2, Status: models.ProjectStatusApproved, Featured: true, LikeCount: 3, Views: 25},
	}

	board := BuildLeaderboard([]models.Member{first, second}, projects)
	require.Len(t, board, 2)

	// 3 likes * 2 + floor(25/10) + 10 featured + 5 approved
	assert.Equal(t, "Star Builder", board[0].Member.FullName)
	assert.Equal(t, int64(23), board[0].Score)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 1, board[0].Projects)

	assert.Equal(t, "Zero Projects", board[1].Member.FullName)
	assert.Equal(t, int64(0), board[1].Score)
	assert.Equal(t, 2, board[1].Rank)
}

func TestBuildLeaderboard_TiesKeepInputOrder(t *testing.T) {
	members := []models.Member{{ID: 10}, {ID: 11}, {ID: 12}}
	projects := []models.Project{
		{OwnerID: 12, Status: models.ProjectStatusApproved},
		{OwnerID: 10, Status: models.ProjectStatusApproved},
	}

	board := BuildLeaderboard(members, projects)
	ids := []uint64{board[0].Member.ID, board[1].Member.ID, board[2].Member.ID}
	assert.Equal(t, []uint64{10, 12, 11}, ids)
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, BuildLeaderboard(nil, nil))
}

func TestLeaderboardScore(t *testing.T) {
	tests := []struct {
		name     string
		projects []models.Project
		want     int64
	}{
		{"none", nil, 0},
		{"pending only counts engagement", []models.Project{{Status: models.ProjectStatusPending, LikeCount: 1, Views: 9}}, 2},
		{"rejected featured", []models.Project{{Status: models.ProjectStatusRejected, Featured: true}}, 10},
		{"negative values ignored", []models.Project{{Status: models.ProjectStatusApproved, LikeCount: -4, Views: -100}}, 5},
		{"sums across projects", []models.Project{
			{Status: models.ProjectStatusApproved, LikeCount: 2, Views: 100},
			{Status: models.ProjectStatusApproved, LikeCount: 1, Views: 19},
		}, 4 + 10 + 5 + 2 + 1 + 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeaderboardScore(tt.projects))
		})
	}
}

func TestCalculateMemberMetrics(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	member := models.Member{ID: 7, JoinDate: now.AddDate(0, 0, -30)}
	projects := []models.Project{
		{OwnerID: 7, Status: models.ProjectStatusPending, Views: 10, LikeCount: 1},
		{OwnerID: 7, Status: models.ProjectStatusApproved, Views: 50, LikeCount: 4},
		{OwnerID: 7, Status: models.ProjectStatusApproved, Views: 0},
		{OwnerID: 7, Status: models.ProjectStatusRejected, Views: 20},
		{OwnerID: 8, Status: models.ProjectStatusApproved, Views: 1000},
	}

	m := CalculateMemberMetrics(member, projects, now)

	assert.Equal(t, MemberMetrics{
		TotalProjects:     4,
		PendingProjects:   1,
		ApprovedProjects:  2,
		RejectedProjects:  1,
		TotalViews:        80,
		TotalLikes:        5,
		AverageEngagement: 20,
		DaysSinceJoin:     30,
	}, m)
}

func TestCalculateMemberMetrics_NoProjects(t *testing.T) {
	now := time.Now()
	m := CalculateMemberMetrics(models.Member{ID: 1, JoinDate: now}, nil, now)
	assert.Zero(t, m.TotalProjects)
	assert.Zero(t, m.AverageEngagement)
	assert.Zero(t, m.DaysSinceJoin)
}
