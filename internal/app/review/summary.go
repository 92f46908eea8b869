package review

import (
	"sort"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// Trend compares a week's average mood against the previous week's.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// trendThreshold is the average-mood delta below which the trend reads
// as steady.
const trendThreshold = 0.3

// ActivityCount pairs an activity tag with how often it appeared.
type ActivityCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Summary aggregates one week of entries for the review surface.
type Summary struct {
	EntryCount    int             `json:"entry_count"`
	DaysLogged    int             `json:"days_logged"`
	AverageMood   float64         `json:"average_mood"` // 0 when no entries
	DominantMood  domain.Mood     `json:"dominant_mood,omitempty"`
	TopActivities []ActivityCount `json:"top_activities,omitempty"`
	Trend         Trend           `json:"trend"`
}

// Summarize computes the weekly aggregates. prev holds the previous week's
// entries and feeds only the trend.
func Summarize(entries, prev []domain.MoodEntry) Summary {
	s := Summary{EntryCount: len(entries), Trend: TrendNeutral}
	if len(entries) == 0 {
		return s
	}

	days := make(map[string]bool)
	moodCounts := make(map[domain.Mood]int)
	activityCounts := make(map[string]int)
	sum := 0
	for _, e := range entries {
		days[domain.DayKey(e.Timestamp)] = true
		moodCounts[e.Mood]++
		sum += int(e.Mood)
		for _, tag := range e.ActivityTags {
			activityCounts[tag]++
		}
	}
	s.DaysLogged = len(days)
	s.AverageMood = float64(sum) / float64(len(entries))

	for mood, n := range moodCounts {
		if n > moodCounts[s.DominantMood] || (n == moodCounts[s.DominantMood] && mood > s.DominantMood) {
			s.DominantMood = mood
		}
	}

	for tag, n := range activityCounts {
		s.TopActivities = append(s.TopActivities, ActivityCount{Tag: tag, Count: n})
	}
	sort.Slice(s.TopActivities, func(i, j int) bool {
		if s.TopActivities[i].Count != s.TopActivities[j].Count {
			return s.TopActivities[i].Count > s.TopActivities[j].Count
		}
		return s.TopActivities[i].Tag < s.TopActivities[j].Tag
	})
	if len(s.TopActivities) > 5 {
		s.TopActivities = s.TopActivities[:5]
	}

	if len(prev) > 0 {
		prevSum := 0
		for _, e := range prev {
			prevSum += int(e.Mood)
		}
		diff := s.AverageMood - float64(prevSum)/float64(len(prev))
		switch {
		case diff > trendThreshold:
			s.Trend = TrendUp
		case diff < -trendThreshold:
			s.Trend = TrendDown
		}
	}

	return s
}
