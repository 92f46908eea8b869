// Package export renders the mood entry log for off-device use.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s)
	}
}

// Write renders entries to w in the given format.
func Write(w io.Writer, format Format, entries []domain.MoodEntry) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, entries)
	case FormatJSON:
		return writeJSON(w, entries)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

var csvHeader = []string{"Date", "Time", "Mood", "Mood Value", "Activities", "People", "Reflection"}

func writeCSV(w io.Writer, entries []domain.MoodEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Timestamp.Format("2006-01-02"),
			e.Timestamp.Format("15:04"),
			e.Mood.String(),
			strconv.Itoa(int(e.Mood)),
			strings.Join(e.ActivityTags, "; "),
			strings.Join(e.PeopleTags, "; "),
			sanitizeNote(e.Note),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sanitizeNote flattens newlines so a reflection stays on one row when the
// file is opened in a spreadsheet.
func sanitizeNote(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

type jsonEntry struct {
	ID           string   `json:"id"`
	Timestamp    string   `json:"timestamp"`
	Mood         string   `json:"mood"`
	MoodValue    int      `json:"mood_value"`
	ActivityTags []string `json:"activity_tags,omitempty"`
	PeopleTags   []string `json:"people_tags,omitempty"`
	Note         string   `json:"note,omitempty"`
	EarnedPoints bool     `json:"earned_points"`
}

func writeJSON(w io.Writer, entries []domain.MoodEntry) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			ID:           e.ID,
			Timestamp:    e.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Mood:         e.Mood.String(),
			MoodValue:    int(e.Mood),
			ActivityTags: e.ActivityTags,
			PeopleTags:   e.PeopleTags,
			Note:         e.Note,
			EarnedPoints: e.EarnedPoints,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
