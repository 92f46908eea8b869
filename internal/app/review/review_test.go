package review_test

import (
	"testing"
	"time"

	"github.com/ReedRawlings/moodlet/internal/app/review"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// sunday is a known Sunday at midnight UTC.
var sunday = time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)

func TestMarkReviewed_AwardsOnce(t *testing.T) {
	p := domain.NewProfile("p1")

	if !review.MarkReviewed(p, sunday) {
		t.Fatal("first review should succeed")
	}
	if p.TotalPoints != 3 {
		t.Fatalf("expected weekly bonus of 3, got %d", p.TotalPoints)
	}

	if review.MarkReviewed(p, sunday) {
		t.Error("second review of the same week should be a no-op")
	}
	if p.TotalPoints != 3 {
		t.Errorf("bonus paid twice: %d", p.TotalPoints)
	}
}

func TestMarkReviewed_IgnoresTimeOfDay(t *testing.T) {
	p := domain.NewProfile("p1")
	review.MarkReviewed(p, sunday.Add(9*time.Hour))

	if !review.HasReviewed(p, sunday) {
		t.Error("same-day comparison must ignore time of day")
	}
	if review.MarkReviewed(p, sunday.Add(23*time.Hour)) {
		t.Error("same week re-reviewed via a different time of day")
	}
}

func TestUnreviewedWeekStart(t *testing.T) {
	p := domain.NewProfile("p1")
	// Wednesday in the week after `sunday`'s week
	today := sunday.AddDate(0, 0, 10)

	got, ok := review.UnreviewedWeekStart(p, today)
	if !ok {
		t.Fatal("expected a pending week")
	}
	if !domain.SameDay(got, sunday) {
		t.Errorf("expected last completed week %v, got %v", sunday, got)
	}

	review.MarkReviewed(p, got)
	if _, ok := review.UnreviewedWeekStart(p, today); ok {
		t.Error("reviewed week surfaced again")
	}
}

func TestUnreviewedWeekStart_NeverCurrentWeek(t *testing.T) {
	p := domain.NewProfile("p1")
	for i := 0; i < 7; i++ {
		today := sunday.AddDate(0, 0, i)
		got, ok := review.UnreviewedWeekStart(p, today)
		if !ok {
			continue
		}
		if !got.Before(domain.WeekStart(today)) {
			t.Errorf("day %d: surfaced the in-progress week %v", i, got)
		}
	}
}

func TestUnreviewedWeekStart_NoBacklog(t *testing.T) {
	p := domain.NewProfile("p1")
	// User skipped several weeks; only the most recent completed one surfaces.
	today := sunday.AddDate(0, 0, 28)

	got, ok := review.UnreviewedWeekStart(p, today)
	if !ok {
		t.Fatal("expected a pending week")
	}
	want := domain.WeekStart(today).AddDate(0, 0, -7)
	if !domain.SameDay(got, want) {
		t.Errorf("expected only last week %v, got %v", want, got)
	}
}

func TestSummarize(t *testing.T) {
	at := func(day int, hour int) time.Time {
		return sunday.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
	}
	entries := []domain.MoodEntry{
		{Timestamp: at(0, 9), Mood: domain.MoodHappy, ActivityTags: []string{"walk", "coffee"}},
		{Timestamp: at(0, 20), Mood: domain.MoodContent, ActivityTags: []string{"walk"}},
		{Timestamp: at(2, 12), Mood: domain.MoodHappy},
	}
	prev := []domain.MoodEntry{
		{Timestamp: at(-7, 12), Mood: domain.MoodSad},
	}

	s := review.Summarize(entries, prev)

	if s.EntryCount != 3 {
		t.Errorf("entry count %d, want 3", s.EntryCount)
	}
	if s.DaysLogged != 2 {
		t.Errorf("days logged %d, want 2", s.DaysLogged)
	}
	if want := (5.0 + 4.0 + 5.0) / 3.0; s.AverageMood != want {
		t.Errorf("average mood %.2f, want %.2f", s.AverageMood, want)
	}
	if s.DominantMood != domain.MoodHappy {
		t.Errorf("dominant mood %v, want happy", s.DominantMood)
	}
	if len(s.TopActivities) == 0 || s.TopActivities[0].Tag != "walk" || s.TopActivities[0].Count != 2 {
		t.Errorf("top activities wrong: %v", s.TopActivities)
	}
	if s.Trend != review.TrendUp {
		t.Errorf("trend %v, want up", s.Trend)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := review.Summarize(nil, nil)
	if s.EntryCount != 0 || s.AverageMood != 0 || s.Trend != review.TrendNeutral {
		t.Errorf("empty summary wrong: %+v", s)
	}
}
