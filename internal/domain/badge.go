package domain

import "time"

// Badge IDs. The set is closed: evaluation dispatches over a fixed table,
// not open polymorphism.
const (
	BadgeFirstMood     = "first_mood"
	BadgeStreak3Day    = "streak_3_day"
	BadgeStreak5Day    = "streak_5_day"
	BadgeFirstPurchase = "first_purchase"
	BadgeDressUp       = "dress_up"
)

// BadgeDef defines a single badge and its unlock predicate.
type BadgeDef struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Predicate   func(BadgeSnapshot) bool `json:"-"`
}

// BadgeSnapshot is the state a badge predicate is checked against.
// Companion may be nil when none exists yet.
type BadgeSnapshot struct {
	Profile    *Profile
	Companion  *Companion
	EntryCount int
}

// EarnedBadge pairs a badge id with when it was earned.
type EarnedBadge struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earned_at"`
}
