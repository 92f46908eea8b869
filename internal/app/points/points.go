// Package points implements the points economy: additive check-in scoring,
// the per-day earning cap, explicit spends, and streak milestone bonuses.
package points

import (
	"github.com/ReedRawlings/moodlet/internal/app/streak"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// Scoring constants. All three entry triggers are independent; none depends
// on mood valence.
const (
	MoodLogPoints     = 1
	ContextTagPoints  = 1
	ReflectionPoints  = 2
	WeeklyReviewBonus = 3

	// MaxDailyPointEntries caps how many entries may earn points per
	// calendar day. Checked before constructing a point-earning entry;
	// points are never retroactively revoked.
	MaxDailyPointEntries = 3
)

// milestoneBonuses maps each streak milestone to its one-time bonus.
var milestoneBonuses = map[int]int{
	3:   2,
	7:   5,
	14:  10,
	30:  15,
	100: 25,
}

// CanEarn reports whether another point-earning entry is allowed today,
// given today's entries.
func CanEarn(todayEntries []domain.MoodEntry) bool {
	earned := 0
	for _, e := range todayEntries {
		if e.EarnedPoints {
			earned++
		}
	}
	return earned < MaxDailyPointEntries
}

// CalculateEntryPoints scores a check-in: base for logging the mood, a small
// bonus for attaching at least one context tag, a larger one for writing a
// non-empty reflection.
func CalculateEntryPoints(moodLogged, tagsAdded, reflectionWritten bool) int {
	total := 0
	if moodLogged {
		total += MoodLogPoints
	}
	if tagsAdded {
		total += ContextTagPoints
	}
	if reflectionWritten {
		total += ReflectionPoints
	}
	return total
}

// Award adds a non-negative amount to the profile's balance.
func Award(p *domain.Profile, amount int) {
	if amount < 0 {
		return
	}
	p.TotalPoints += amount
}

// Spend deducts amount from the balance. Returns false without mutation when
// the balance is short. This is the only removal path in the economy.
func Spend(p *domain.Profile, amount int) bool {
	if p.TotalPoints < amount {
		return false
	}
	p.TotalPoints -= amount
	return true
}

// CheckAndAwardStreakBonus pays the milestone bonus when the current streak
// sits exactly on a milestone that has not been paid this streak. The
// LastMilestonePaid marker (cleared when a streak resets) makes repeated
// calls on an unchanged streak safe.
func CheckAndAwardStreakBonus(p *domain.Profile) int {
	m, ok := streak.MilestoneReached(p)
	if !ok || m <= p.LastMilestonePaid {
		return 0
	}
	bonus := milestoneBonuses[m]
	p.TotalPoints += bonus
	p.LastMilestonePaid = m
	return bonus
}

// MilestoneBonus returns the bonus a given milestone pays (0 if unknown).
func MilestoneBonus(milestone int) int {
	return milestoneBonuses[milestone]
}
