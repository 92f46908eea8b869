// Package streak implements day-to-day streak continuity: consecutive-day
// counting, one-miss grace forgiveness, and milestone projections.
// Transitions are pure functions over the profile; the caller owns
// persistence.
package streak

import (
	"time"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// GracePeriodDays is the widest gap the grace rule forgives: a gap of
// exactly this many days means one missed day, which grace can cover once
// per streak.
const GracePeriodDays = 2

// Milestones is the fixed ascending milestone table shared with the points
// ledger's streak bonuses.
var Milestones = []int{3, 7, 14, 30, 100}

// Update applies a check-in on newEntryDay to the profile's streak state
// and reports whether the streak restarted from 1. Same-day entries never
// inflate the streak; a one-day gap extends it; a two-day gap consumes grace
// if available; anything longer resets. LongestStreak and LastLogDate are
// refreshed on every path.
func Update(p *domain.Profile, newEntryDay time.Time) bool {
	var didReset bool

	if p.LastLogDate.IsZero() {
		// First ever entry
		p.CurrentStreak = 1
		p.LastLogDate = newEntryDay
		if p.LongestStreak < p.CurrentStreak {
			p.LongestStreak = p.CurrentStreak
		}
		return false
	}

	switch gap := domain.DaysBetween(p.LastLogDate, newEntryDay); {
	case gap == 0:
		// Same calendar day: counters untouched, timestamp refreshed below

	case gap == 1:
		p.CurrentStreak++
		p.StreakGraceUsed = false

	case gap == GracePeriodDays:
		if !p.StreakGraceUsed {
			// The missed day is forgiven, once per streak
			p.CurrentStreak++
			p.StreakGraceUsed = true
		} else {
			reset(p)
			didReset = true
		}

	default:
		reset(p)
		didReset = true
	}

	if p.LongestStreak < p.CurrentStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastLogDate = newEntryDay
	return didReset
}

// reset restarts the streak from 1. Grace and the milestone-paid marker
// belong to a single streak, so both clear here.
func reset(p *domain.Profile) {
	p.CurrentStreak = 1
	p.StreakGraceUsed = false
	p.LastMilestonePaid = 0
}

// AtRisk reports whether the streak will need grace or break tomorrow:
// exactly one day has elapsed since the last log and grace is unused.
// Pure query, drives reminder messaging only.
func AtRisk(p *domain.Profile, today time.Time) bool {
	if p.LastLogDate.IsZero() {
		return false
	}
	return domain.DaysBetween(p.LastLogDate, today) == 1 && !p.StreakGraceUsed
}

// MilestoneReached returns the milestone the current streak sits exactly on,
// if any. Crossings are rewarded once; subsequent days at the same count do
// not re-trigger.
func MilestoneReached(p *domain.Profile) (int, bool) {
	for _, m := range Milestones {
		if p.CurrentStreak == m {
			return m, true
		}
	}
	return 0, false
}

// NextMilestone returns the first milestone above the current streak.
// Past the table it is simply the next day.
func NextMilestone(p *domain.Profile) int {
	for _, m := range Milestones {
		if p.CurrentStreak < m {
			return m
		}
	}
	return p.CurrentStreak + 1
}

// DaysUntilNextMilestone is a pure projection for display.
func DaysUntilNextMilestone(p *domain.Profile) int {
	return NextMilestone(p) - p.CurrentStreak
}
