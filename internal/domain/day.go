package domain

import "time"

// Calendar-day helpers. All streak and review rules compare whole calendar
// days in the timestamp's own location; time of day is ignored.

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the whole calendar days from a to b (negative if b
// precedes a). Rounding absorbs DST offsets.
func DaysBetween(a, b time.Time) int {
	diff := StartOfDay(b).Sub(StartOfDay(a))
	return int(diff.Round(24*time.Hour) / (24 * time.Hour))
}

// WeekStart returns the Sunday beginning the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// DayKey formats a time as its calendar-day key ("2006-01-02").
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
