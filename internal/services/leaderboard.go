package services

import (
	"sort"
	"time"

	"github.com/yukikurage/club-projects-api/internal/models"
)

const (
	leaderboardPointsPerLike  = 2
	leaderboardViewsPerPoint  = 10
	leaderboardFeaturedPoints = 10
	leaderboardApprovedPoints = 5
	hoursPerDay               = 24
)

// MemberMetrics are participation figures derived from a member's projects.
type MemberMetrics struct {
	TotalProjects     int     `json:"totalProjects"`
	PendingProjects   int     `json:"pendingProjects"`
	ApprovedProjects  int     `json:"approvedProjects"`
	RejectedProjects  int     `json:"rejectedProjects"`
	TotalViews        int64   `json:"totalViews"`
	TotalLikes        int64   `json:"totalLikes"`
	AverageEngagement float64 `json:"averageEngagement"`
	DaysSinceJoin     int     `json:"daysSinceJoin"`
}

// CalculateMemberMetrics folds the member's projects into metrics. Projects
// owned by other members are ignored.
func CalculateMemberMetrics(member models.Member, projects []models.Project, now time.Time) MemberMetrics {
	var m MemberMetrics
	for _, p := range projects {
		if p.OwnerID != member.ID {
			continue
		}
		m.TotalProjects++
		switch p.Status {
		case models.ProjectStatusPending:
			m.PendingProjects++
		case models.ProjectStatusApproved:
			m.ApprovedProjects++
		case models.ProjectStatusRejected:
			m.RejectedProjects++
		}
		m.TotalViews += nonNegative(p.Views)
		m.TotalLikes += nonNegative(p.LikeCount)
	}

	if m.TotalProjects > 0 {
		m.AverageEngagement = float64(m.TotalViews) / float64(m.TotalProjects)
	}
	if !member.JoinDate.IsZero() && now.After(member.JoinDate) {
		m.DaysSinceJoin = int(now.Sub(member.JoinDate).Hours() / hoursPerDay)
	}
	return m
}

// LeaderboardEntry is one ranked member.
type LeaderboardEntry struct {
	Rank     int
	Member   models.Member
	Score    int64
	Projects int
}

// LeaderboardScore sums the scoring rules over one member's projects.
func LeaderboardScore(projects []models.Project) int64 {
	var score int64
	for _, p := range projects {
		score += nonNegative(p.LikeCount) * leaderboardPointsPerLike
		score += nonNegative(p.Views) / leaderboardViewsPerPoint
		if p.Featured {
			score += leaderboardFeaturedPoints
		}
		if p.Status == models.ProjectStatusApproved {
			score += leaderboardApprovedPoints
		}
	}
	return score
}

// BuildLeaderboard scores every member against the full project set and
// sorts by descending score. Ties keep the input order.
func BuildLeaderboard(members []models.Member, projects []models.Project) []LeaderboardEntry {
	byOwner := make(map[uint64][]models.Project, len(members))
	for _, p := range projects {
		byOwner[p.OwnerID] = append(byOwner[p.OwnerID], p)
	}

	entries := make([]LeaderboardEntry, len(members))
	for i, m := range members {
		owned := byOwner[m.ID]
		entries[i] = LeaderboardEntry{
			Member:   m,
			Score:    LeaderboardScore(owned),
			Projects: len(owned),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
