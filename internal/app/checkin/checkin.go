// Package checkin runs the full engagement pipeline for a single mood log:
// points, streak continuity, milestone bonuses, and badge evaluation, in
// that order, then persists the updated profile.
package checkin

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ReedRawlings/moodlet/internal/app/badges"
	"github.com/ReedRawlings/moodlet/internal/app/points"
	"github.com/ReedRawlings/moodlet/internal/app/streak"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// Options describe one check-in as entered by the user.
type Options struct {
	Mood         domain.Mood
	Note         string
	ActivityTags []string
	PeopleTags   []string
}

// Result summarizes what the pipeline awarded.
type Result struct {
	Entry         domain.MoodEntry     `json:"entry"`
	PointsEarned  int                  `json:"points_earned"`
	StreakBonus   int                  `json:"streak_bonus"`
	CurrentStreak int                  `json:"current_streak"`
	TotalPoints   int                  `json:"total_points"`
	NewBadges     []domain.EarnedBadge `json:"new_badges,omitempty"`
	CapReached    bool                 `json:"cap_reached"`
	StreakReset   bool                 `json:"streak_reset,omitempty"`
}

// Service wires the engagement rules to storage.
type Service struct {
	profiles domain.ProfileStore
	entries  domain.EntryStore
	clock    domain.Clock
	badges   *badges.Evaluator
}

func NewService(profiles domain.ProfileStore, entries domain.EntryStore, clock domain.Clock) *Service {
	return &Service{
		profiles: profiles,
		entries:  entries,
		clock:    clock,
		badges:   badges.NewEvaluator(clock),
	}
}

// CheckIn records a mood entry and applies every engagement rule that
// follows from it. Logging always succeeds for a valid mood; the daily cap
// only stops points, never the entry itself.
func (s *Service) CheckIn(opts Options) (*Result, error) {
	if !opts.Mood.Valid() {
		return nil, domain.ErrInvalidMood
	}

	profile, err := s.profiles.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	now := s.clock.Now()
	todayEntries, err := s.entries.EntriesOn(now)
	if err != nil {
		return nil, fmt.Errorf("load today's entries: %w", err)
	}

	entry := domain.MoodEntry{
		ID:           uuid.NewString(),
		Timestamp:    now,
		Mood:         opts.Mood,
		Note:         strings.TrimSpace(opts.Note),
		ActivityTags: opts.ActivityTags,
		PeopleTags:   opts.PeopleTags,
	}

	capReached := !points.CanEarn(todayEntries)
	earned := 0
	if !capReached {
		earned = points.CalculateEntryPoints(true, entry.HasTags(), entry.HasReflection())
	}
	entry.EarnedPoints = earned > 0
	points.Award(profile, earned)

	streakReset := streak.Update(profile, now)
	bonus := points.CheckAndAwardStreakBonus(profile)

	companion, err := s.profiles.LoadCompanion()
	if err != nil && err != domain.ErrNoCompanion {
		return nil, fmt.Errorf("load companion: %w", err)
	}
	entryCount, err := s.entries.EntryCount()
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	if err := s.entries.InsertEntry(entry); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	newBadges := s.badges.CheckAndAward(domain.BadgeSnapshot{
		Profile:    profile,
		Companion:  companion,
		EntryCount: entryCount + 1,
	})

	if err := s.profiles.SaveProfile(profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	return &Result{
		Entry:         entry,
		PointsEarned:  earned,
		StreakBonus:   bonus,
		CurrentStreak: profile.CurrentStreak,
		TotalPoints:   profile.TotalPoints,
		NewBadges:     newBadges,
		CapReached:    capReached,
		StreakReset:   streakReset,
	}, nil
}

// History returns entries between from and to in chronological order.
func (s *Service) History(from, to time.Time) ([]domain.MoodEntry, error) {
	return s.entries.EntriesBetween(from, to)
}
