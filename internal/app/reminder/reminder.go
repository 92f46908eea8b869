// Package reminder picks check-in reminder copy and enforces the delivery
// policy. Actual scheduling belongs to the host platform; the engine only
// decides what to say and whether now is an acceptable time to say it.
package reminder

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ReedRawlings/moodlet/internal/app/streak"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

var morningMessages = []string{
	"Good morning - how are you starting the day?",
	"Rise and shine - how are you feeling?",
	"Morning check-in time",
	"A new day begins - how's it going?",
	"Good morning! Ready for today's check-in?",
}

var afternoonMessages = []string{
	"Afternoon check-in - how's it going?",
	"Midday moment - how are you?",
	"Taking a pause - how's your day?",
	"Checking in - how are things?",
	"Afternoon vibes - how are you feeling?",
}

var eveningMessages = []string{
	"Winding down - how was today?",
	"Evening reflection time",
	"End of day - how are you feeling?",
	"Time to reflect - how was your day?",
	"Evening check-in - how are you?",
}

var neutralMessages = []string{
	"Your Moodlet is here when you're ready",
	"Ready for a check-in?",
	"How are you feeling right now?",
	"Take a moment to check in",
	"Your Moodlet is thinking of you",
}

var journalPrompts = []string{
	"What's on your mind?",
	"What influenced your mood today?",
	"One thing you noticed about yourself",
	"What are you grateful for right now?",
	"What's something that made you smile?",
	"What's been challenging lately?",
	"How are you taking care of yourself?",
	"What's one small win from today?",
	"What are you looking forward to?",
	"How did you show up for yourself today?",
}

// streakAtRiskMessage nudges when exactly one day has elapsed and grace is
// still available.
const streakAtRiskMessage = "Your streak is waiting - check in today to keep it going"

// MessageFor returns reminder copy appropriate to the hour of day.
func MessageFor(hour int, r *rand.Rand) string {
	var pool []string
	switch {
	case hour >= 5 && hour < 12:
		pool = morningMessages
	case hour >= 12 && hour < 17:
		pool = afternoonMessages
	case hour >= 17 && hour < 22:
		pool = eveningMessages
	default:
		pool = neutralMessages
	}
	return pool[r.Intn(len(pool))]
}

// MessageForProfile prefers the streak-at-risk nudge over time-of-day copy.
func MessageForProfile(p *domain.Profile, now time.Time, r *rand.Rand) string {
	if streak.AtRisk(p, now) {
		return streakAtRiskMessage
	}
	return MessageFor(now.Hour(), r)
}

// JournalPrompts returns n random reflection prompts.
func JournalPrompts(n int, r *rand.Rand) []string {
	shuffled := make([]string, len(journalPrompts))
	copy(shuffled, journalPrompts)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// Policy governs reminder delivery: a hard daily cap and quiet hours.
type Policy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultPolicy is one reminder a day, silent overnight.
func DefaultPolicy() Policy {
	return Policy{MaxPerDay: 1, QuietStart: "22:00", QuietEnd: "08:00"}
}

// Allows reports whether a reminder may fire at t given how many were
// already sent today.
func (p Policy) Allows(t time.Time, sentToday int) bool {
	if sentToday >= p.MaxPerDay {
		return false
	}
	return !p.quiet(t)
}

func (p Policy) quiet(t time.Time) bool {
	start := parseHHMM(p.QuietStart)
	end := parseHHMM(p.QuietEnd)
	now := t.Hour()*60 + t.Minute()

	if start > end {
		// Wraps midnight, e.g. 22:00-08:00
		return now >= start || now < end
	}
	return now >= start && now < end
}

// parseHHMM converts "HH:MM" to minutes past midnight.
func parseHHMM(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}
