// Package review implements the weekly review: a one-time flat bonus per
// completed week, keyed by the calendar date of the week's Sunday.
package review

import (
	"time"

	"github.com/ReedRawlings/moodlet/internal/app/points"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// HasReviewed reports whether the week starting on weekStart was reviewed.
// Time of day is ignored.
func HasReviewed(p *domain.Profile, weekStart time.Time) bool {
	return p.ReviewedWeekStarts[domain.DayKey(weekStart)]
}

// MarkReviewed records the week and pays the flat review bonus, exactly once
// per distinct week ever. Returns false (no mutation) when already reviewed.
func MarkReviewed(p *domain.Profile, weekStart time.Time) bool {
	key := domain.DayKey(domain.StartOfDay(weekStart))
	if p.ReviewedWeekStarts[key] {
		return false
	}
	p.ReviewedWeekStarts[key] = true
	points.Award(p, points.WeeklyReviewBonus)
	return true
}

// UnreviewedWeekStart returns the Sunday of the most recently completed week
// iff it has not been reviewed. The in-progress week is never surfaced, and
// there is no backlog: at most one week is pending at any time.
func UnreviewedWeekStart(p *domain.Profile, today time.Time) (time.Time, bool) {
	lastWeek := domain.WeekStart(today).AddDate(0, 0, -7)
	if HasReviewed(p, lastWeek) {
		return time.Time{}, false
	}
	return lastWeek, true
}
