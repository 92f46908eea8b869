package reminder

import (
	"math/rand"
	"testing"
	"time"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

func rng() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestMessageForBuckets(t *testing.T) {
	cases := []struct {
		hour int
		pool []string
	}{
		{6, morningMessages},
		{11, morningMessages},
		{12, afternoonMessages},
		{16, afternoonMessages},
		{17, eveningMessages},
		{21, eveningMessages},
		{22, neutralMessages},
		{2, neutralMessages},
		{4, neutralMessages},
	}
	for _, tc := range cases {
		msg := MessageFor(tc.hour, rng())
		found := false
		for _, m := range tc.pool {
			if m == msg {
				found = true
			}
		}
		if !found {
			t.Errorf("hour %d: %q not in expected pool", tc.hour, msg)
		}
	}
}

func TestMessageForProfileAtRisk(t *testing.T) {
	p := domain.NewProfile("test")
	p.CurrentStreak = 5
	p.LastLogDate = time.Date(2025, 7, 10, 20, 0, 0, 0, time.UTC)

	now := time.Date(2025, 7, 11, 9, 0, 0, 0, time.UTC)
	if got := MessageForProfile(p, now, rng()); got != streakAtRiskMessage {
		t.Errorf("expected at-risk nudge, got %q", got)
	}

	// Logged today already: regular copy
	sameDay := time.Date(2025, 7, 10, 21, 0, 0, 0, time.UTC)
	if got := MessageForProfile(p, sameDay, rng()); got == streakAtRiskMessage {
		t.Error("nudge fired though already logged today")
	}
}

func TestJournalPrompts(t *testing.T) {
	got := JournalPrompts(3, rng())
	if len(got) != 3 {
		t.Fatalf("got %d prompts, want 3", len(got))
	}
	seen := map[string]bool{}
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate prompt %q", p)
		}
		seen[p] = true
	}

	if got := JournalPrompts(100, rng()); len(got) != len(journalPrompts) {
		t.Errorf("oversized request returned %d, want %d", len(got), len(journalPrompts))
	}
}

func TestPolicyQuietHours(t *testing.T) {
	p := DefaultPolicy()
	at := func(h, m int) time.Time {
		return time.Date(2025, 7, 1, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		t    time.Time
		want bool
	}{
		{at(12, 0), true},
		{at(21, 59), true},
		{at(22, 0), false},
		{at(23, 30), false},
		{at(3, 0), false},
		{at(7, 59), false},
		{at(8, 0), true},
	}
	for _, tc := range cases {
		if got := p.Allows(tc.t, 0); got != tc.want {
			t.Errorf("Allows(%s) = %v, want %v", tc.t.Format("15:04"), got, tc.want)
		}
	}
}

func TestPolicyDailyCap(t *testing.T) {
	p := DefaultPolicy()
	noon := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	if !p.Allows(noon, 0) {
		t.Error("first reminder of the day should be allowed")
	}
	if p.Allows(noon, 1) {
		t.Error("second reminder exceeded cap")
	}
}
