package domain

import "time"

// Mood is the 1-5 ordinal a check-in records. Higher is better.
type Mood int

const (
	MoodSad     Mood = 1
	MoodAnnoyed Mood = 2
	MoodNeutral Mood = 3
	MoodContent Mood = 4
	MoodHappy   Mood = 5
)

// Valid reports whether the ordinal is in range.
func (m Mood) Valid() bool { return m >= MoodSad && m <= MoodHappy }

func (m Mood) String() string {
	switch m {
	case MoodSad:
		return "sad"
	case MoodAnnoyed:
		return "annoyed"
	case MoodNeutral:
		return "neutral"
	case MoodContent:
		return "content"
	case MoodHappy:
		return "happy"
	default:
		return "unknown"
	}
}

// ParseMood maps a mood name back to its ordinal.
func ParseMood(s string) (Mood, bool) {
	for m := MoodSad; m <= MoodHappy; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// MoodEntry is an append-only check-in record. Immutable once created;
// the engine only ever reads entries to derive counts.
type MoodEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Mood         Mood      `json:"mood"`
	Note         string    `json:"note,omitempty"`
	ActivityTags []string  `json:"activity_tags,omitempty"`
	PeopleTags   []string  `json:"people_tags,omitempty"`
	EarnedPoints bool      `json:"earned_points"`
}

// HasTags reports whether any context tag was attached.
func (e MoodEntry) HasTags() bool {
	return len(e.ActivityTags) > 0 || len(e.PeopleTags) > 0
}

// HasReflection reports whether a non-empty note was written.
func (e MoodEntry) HasReflection() bool { return e.Note != "" }
