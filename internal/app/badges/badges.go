// Package badges implements monotonic one-way badge unlocking. The badge set
// is closed: a fixed table of definitions, each with a pure predicate over a
// profile/companion snapshot.
package badges

import (
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// All returns the full badge catalog.
func All() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			ID: domain.BadgeFirstMood, Name: "First Check-In",
			Description: "Log your first mood",
			Predicate:   func(s domain.BadgeSnapshot) bool { return s.EntryCount >= 1 },
		},
		{
			ID: domain.BadgeStreak3Day, Name: "3-Day Streak",
			Description: "Maintain a 3-day streak",
			Predicate:   func(s domain.BadgeSnapshot) bool { return s.Profile.LongestStreak >= 3 },
		},
		{
			ID: domain.BadgeStreak5Day, Name: "5-Day Streak",
			Description: "Maintain a 5-day streak",
			Predicate:   func(s domain.BadgeSnapshot) bool { return s.Profile.LongestStreak >= 5 },
		},
		{
			ID: domain.BadgeFirstPurchase, Name: "First Purchase",
			Description: "Buy your first item from the shop",
			Predicate: func(s domain.BadgeSnapshot) bool {
				return len(s.Profile.UnlockedAccessoryIDs) > 0 || len(s.Profile.UnlockedBackgroundIDs) > 0
			},
		},
		{
			ID: domain.BadgeDressUp, Name: "Dress Up",
			Description: "Equip an accessory on your companion",
			Predicate: func(s domain.BadgeSnapshot) bool {
				return s.Companion != nil && s.Companion.HasEquippedAccessories()
			},
		},
	}
}

// Evaluator awards badges against snapshots. The injected clock stamps
// earned times.
type Evaluator struct {
	clock domain.Clock
	defs  []domain.BadgeDef
}

// NewEvaluator creates an evaluator over the full badge catalog.
func NewEvaluator(clock domain.Clock) *Evaluator {
	return &Evaluator{clock: clock, defs: All()}
}

// Earn records a badge as earned now. No-op when already earned; the
// original timestamp is never overwritten.
func (e *Evaluator) Earn(p *domain.Profile, id string) bool {
	if p.HasBadge(id) {
		return false
	}
	p.Badges[id] = e.clock.Now()
	return true
}

// CheckAndAward runs every predicate against the snapshot and earns what
// passes. Idempotent and order-independent: re-running never un-earns a
// badge and never touches an existing timestamp. Returns the newly earned
// badges with their timestamps.
func (e *Evaluator) CheckAndAward(s domain.BadgeSnapshot) []domain.EarnedBadge {
	var earned []domain.EarnedBadge
	for _, def := range e.defs {
		if s.Profile.HasBadge(def.ID) {
			continue
		}
		if def.Predicate != nil && def.Predicate(s) {
			if e.Earn(s.Profile, def.ID) {
				earned = append(earned, domain.EarnedBadge{
					ID:       def.ID,
					EarnedAt: s.Profile.Badges[def.ID],
				})
			}
		}
	}
	return earned
}

// Reevaluate gathers a fresh snapshot from the stores, awards whatever newly
// passes, and persists the profile when something lands. Call sites use it
// after events outside the check-in pipeline, such as purchases and equips.
func (e *Evaluator) Reevaluate(profiles domain.ProfileStore, entries domain.EntryStore, p *domain.Profile) ([]domain.EarnedBadge, error) {
	companion, err := profiles.LoadCompanion()
	if err != nil && err != domain.ErrNoCompanion {
		return nil, err
	}
	count, err := entries.EntryCount()
	if err != nil {
		return nil, err
	}

	earned := e.CheckAndAward(domain.BadgeSnapshot{
		Profile:    p,
		Companion:  companion,
		EntryCount: count,
	})
	if len(earned) == 0 {
		return nil, nil
	}
	if err := profiles.SaveProfile(p); err != nil {
		return earned, err
	}
	return earned, nil
}

// Definitions returns the badge catalog for display.
func (e *Evaluator) Definitions() []domain.BadgeDef {
	return e.defs
}
