package sqlite

import (
	"database/sql"
	"time"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// InsertEntry appends a mood entry. Entries are immutable once written.
func (d *DB) InsertEntry(e domain.MoodEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO entries (id, timestamp, mood, note, activity_tags, people_tags, earned_points)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.Unix(), int(e.Mood), e.Note,
		joinTags(e.ActivityTags), joinTags(e.PeopleTags), e.EarnedPoints,
	)
	return err
}

// EntriesOn returns entries logged on the same calendar day as day, in the
// day's own location, oldest first.
func (d *DB) EntriesOn(day time.Time) ([]domain.MoodEntry, error) {
	start := domain.StartOfDay(day)
	return d.EntriesBetween(start, start.AddDate(0, 0, 1))
}

// EntriesBetween returns entries with from <= timestamp < to, oldest first.
func (d *DB) EntriesBetween(from, to time.Time) ([]domain.MoodEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, timestamp, mood, note, activity_tags, people_tags, earned_points
		 FROM entries WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp ASC`,
		from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// EntryCount returns the total number of logged entries.
func (d *DB) EntryCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

func scanEntry(s scanner) (*domain.MoodEntry, error) {
	var e domain.MoodEntry
	var ts int64
	var mood int
	var activities, people string

	err := s.Scan(&e.ID, &ts, &mood, &e.Note, &activities, &people, &e.EarnedPoints)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.Timestamp = time.Unix(ts, 0).UTC()
	e.Mood = domain.Mood(mood)
	e.ActivityTags = splitTags(activities)
	e.PeopleTags = splitTags(people)
	return &e, nil
}
