// Package scoring computes the bounded popularity score shown on project pages.
package scoring

import (
	"math"
	"time"
)

const (
	maxLikePoints    = 40
	pointsPerLike    = 2
	maxViewPoints    = 20
	viewsPerPoint    = 10
	featuredPoints   = 20
	maxRecencyPoints = 20
	recencyDecayDays = 7

	MaxScore = 100
)

// EngagementInput is the subset of a project the score depends on.
type EngagementInput struct {
	Likes     int64
	Views     int64
	Featured  bool
	CreatedAt time.Time
}

// Engagement returns a score in [0, MaxScore]. Negative counts are treated as
// zero and a zero CreatedAt earns no recency bonus. Creation dates in the
// future count as created now.
func Engagement(in EngagementInput, now time.Time) float64 {
	likes := nonNegative(in.Likes)
	views := nonNegative(in.Views)

	score := math.Min(float64(likes*pointsPerLike), maxLikePoints)
	score += math.Min(float64(views/viewsPerPoint), maxViewPoints)
	if in.Featured {
		score += featuredPoints
	}
	score += recencyBonus(in.CreatedAt, now)

	return clamp(score, 0, MaxScore)
}

func recencyBonus(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	days := now.Sub(createdAt).Hours() / 24
	if days < 0 || math.IsNaN(days) {
		days = 0
	}
	return math.Max(0, maxRecencyPoints-days/recencyDecayDays)
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
