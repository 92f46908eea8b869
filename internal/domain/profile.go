// Package domain holds the Moodlet core types and the interfaces between
// layers. The engagement rules (streaks, points, badges, reviews, shop)
// operate on these types in memory; persistence is the store's job.
package domain

import "time"

// Profile is the single per-user aggregate the engagement engine mutates.
// Invariant: CurrentStreak <= LongestStreak after every update.
// StreakGraceUsed is only meaningful until the streak restarts from 1.
type Profile struct {
	ID                    string               `json:"id"`
	TotalPoints           int                  `json:"total_points"`
	CurrentStreak         int                  `json:"current_streak"`
	LongestStreak         int                  `json:"longest_streak"`
	LastLogDate           time.Time            `json:"last_log_date"` // zero = no entry yet
	StreakGraceUsed       bool                 `json:"streak_grace_used"`
	LastMilestonePaid     int                  `json:"last_milestone_paid"` // highest streak milestone already rewarded this streak
	IsPremium             bool                 `json:"is_premium"`
	Badges                map[string]time.Time `json:"badges"` // badge id -> earned at
	UnlockedAccessoryIDs  map[string]bool      `json:"unlocked_accessory_ids"`
	UnlockedBackgroundIDs map[string]bool      `json:"unlocked_background_ids"`
	ReviewedWeekStarts    map[string]bool      `json:"reviewed_week_starts"` // day key of each reviewed week's Sunday
	UnlockedSpecies       map[string]bool      `json:"unlocked_species"`
}

// NewProfile returns the default profile materialized on first launch.
func NewProfile(id string) *Profile {
	return &Profile{
		ID:                    id,
		Badges:                make(map[string]time.Time),
		UnlockedAccessoryIDs:  make(map[string]bool),
		UnlockedBackgroundIDs: make(map[string]bool),
		ReviewedWeekStarts:    make(map[string]bool),
		UnlockedSpecies:       map[string]bool{string(SpeciesCat): true},
	}
}

// HasBadge reports whether the badge has been earned.
func (p *Profile) HasBadge(id string) bool {
	_, ok := p.Badges[id]
	return ok
}

// HasUnlockedAccessory reports ownership of an accessory.
func (p *Profile) HasUnlockedAccessory(id string) bool {
	return p.UnlockedAccessoryIDs[id]
}

// HasUnlockedBackground reports ownership of a background.
func (p *Profile) HasUnlockedBackground(id string) bool {
	return p.UnlockedBackgroundIDs[id]
}

// HasUnlockedSpecies reports whether a companion species is available.
func (p *Profile) HasUnlockedSpecies(s Species) bool {
	return p.UnlockedSpecies[string(s)]
}

// Clock supplies "now" so the rules are testable without wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
