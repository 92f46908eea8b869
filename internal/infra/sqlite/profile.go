package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// Unlock kinds as stored in the unlocks table.
const (
	unlockAccessory  = "accessory"
	unlockBackground = "background"
	unlockSpecies    = "species"
)

// LoadProfile returns the profile, creating a default one on first use.
func (d *DB) LoadProfile() (*domain.Profile, error) {
	row := d.db.QueryRow(
		`SELECT id, total_points, current_streak, longest_streak, last_log_date,
		        streak_grace_used, last_milestone_paid, is_premium
		 FROM profile LIMIT 1`,
	)

	// The set loaders below fill these maps, so they must exist before
	// scanning an existing row.
	p := &domain.Profile{
		Badges:                make(map[string]time.Time),
		UnlockedAccessoryIDs:  make(map[string]bool),
		UnlockedBackgroundIDs: make(map[string]bool),
		ReviewedWeekStarts:    make(map[string]bool),
		UnlockedSpecies:       make(map[string]bool),
	}
	var lastLog sql.NullInt64
	err := row.Scan(&p.ID, &p.TotalPoints, &p.CurrentStreak, &p.LongestStreak,
		&lastLog, &p.StreakGraceUsed, &p.LastMilestonePaid, &p.IsPremium)
	if err == sql.ErrNoRows {
		p = domain.NewProfile(uuid.NewString())
		if err := d.SaveProfile(p); err != nil {
			return nil, fmt.Errorf("init profile: %w", err)
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if lastLog.Valid {
		p.LastLogDate = time.Unix(lastLog.Int64, 0)
	}

	if err := d.loadBadges(p); err != nil {
		return nil, err
	}
	if err := d.loadUnlocks(p); err != nil {
		return nil, err
	}
	if err := d.loadReviewedWeeks(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveProfile persists the aggregate: scalar row, badge timestamps, unlock
// sets, and reviewed weeks. Sets are written with INSERT OR IGNORE so they
// only ever grow and first timestamps survive.
func (d *DB) SaveProfile(p *domain.Profile) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profile (id, total_points, current_streak, longest_streak,
		                      last_log_date, streak_grace_used, last_milestone_paid, is_premium)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			total_points=excluded.total_points,
			current_streak=excluded.current_streak,
			longest_streak=excluded.longest_streak,
			last_log_date=excluded.last_log_date,
			streak_grace_used=excluded.streak_grace_used,
			last_milestone_paid=excluded.last_milestone_paid,
			is_premium=excluded.is_premium`,
		p.ID, p.TotalPoints, p.CurrentStreak, p.LongestStreak,
		nullableUnix(p.LastLogDate), p.StreakGraceUsed, p.LastMilestonePaid, p.IsPremium,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	for id, earnedAt := range p.Badges {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO badges (id, earned_at) VALUES (?, ?)`,
			id, earnedAt.Unix(),
		); err != nil {
			return fmt.Errorf("save badge %s: %w", id, err)
		}
	}

	unlockSets := []struct {
		kind string
		set  map[string]bool
	}{
		{unlockAccessory, p.UnlockedAccessoryIDs},
		{unlockBackground, p.UnlockedBackgroundIDs},
		{unlockSpecies, p.UnlockedSpecies},
	}
	now := time.Now().Unix()
	for _, s := range unlockSets {
		for id := range s.set {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO unlocks (item_id, kind, unlocked_at) VALUES (?, ?, ?)`,
				id, s.kind, now,
			); err != nil {
				return fmt.Errorf("save unlock %s/%s: %w", s.kind, id, err)
			}
		}
	}

	for week := range p.ReviewedWeekStarts {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO reviewed_weeks (week_start) VALUES (?)`, week,
		); err != nil {
			return fmt.Errorf("save reviewed week %s: %w", week, err)
		}
	}

	return tx.Commit()
}

func (d *DB) loadBadges(p *domain.Profile) error {
	rows, err := d.db.Query(`SELECT id, earned_at FROM badges`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var earnedAt int64
		if err := rows.Scan(&id, &earnedAt); err != nil {
			return err
		}
		p.Badges[id] = time.Unix(earnedAt, 0)
	}
	return rows.Err()
}

func (d *DB) loadUnlocks(p *domain.Profile) error {
	rows, err := d.db.Query(`SELECT item_id, kind FROM unlocks`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, kind string
		if err := rows.Scan(&id, &kind); err != nil {
			return err
		}
		switch kind {
		case unlockAccessory:
			p.UnlockedAccessoryIDs[id] = true
		case unlockBackground:
			p.UnlockedBackgroundIDs[id] = true
		case unlockSpecies:
			p.UnlockedSpecies[id] = true
		}
	}
	return rows.Err()
}

func (d *DB) loadReviewedWeeks(p *domain.Profile) error {
	rows, err := d.db.Query(`SELECT week_start FROM reviewed_weeks`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return err
		}
		p.ReviewedWeekStarts[week] = true
	}
	return rows.Err()
}

// LoadCompanion returns the companion or ErrNoCompanion if none was created.
func (d *DB) LoadCompanion() (*domain.Companion, error) {
	row := d.db.QueryRow(
		`SELECT id, name, species, created_at, background_id FROM companion LIMIT 1`,
	)

	c := &domain.Companion{EquippedAccessories: map[domain.AccessoryCategory]string{}}
	var createdAt int64
	var species string
	err := row.Scan(&c.ID, &c.Name, &species, &createdAt, &c.EquippedBackgroundID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoCompanion
	}
	if err != nil {
		return nil, err
	}
	c.Species = domain.Species(species)
	c.CreatedAt = time.Unix(createdAt, 0)

	rows, err := d.db.Query(`SELECT category, item_id FROM equipped`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category, itemID string
		if err := rows.Scan(&category, &itemID); err != nil {
			return nil, err
		}
		c.EquippedAccessories[domain.AccessoryCategory(category)] = itemID
	}
	return c, rows.Err()
}

// SaveCompanion persists the companion and its full equipped state.
func (d *DB) SaveCompanion(c *domain.Companion) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO companion (id, name, species, created_at, background_id)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			species=excluded.species,
			background_id=excluded.background_id`,
		c.ID, c.Name, string(c.Species), c.CreatedAt.Unix(), c.EquippedBackgroundID,
	)
	if err != nil {
		return fmt.Errorf("save companion: %w", err)
	}

	// Equipped set is replaced wholesale so unequips stick.
	if _, err := tx.Exec(`DELETE FROM equipped`); err != nil {
		return err
	}
	for category, itemID := range c.EquippedAccessories {
		if _, err := tx.Exec(
			`INSERT INTO equipped (category, item_id) VALUES (?, ?)`,
			string(category), itemID,
		); err != nil {
			return fmt.Errorf("save equipped %s: %w", category, err)
		}
	}

	return tx.Commit()
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

// joinTags flattens a tag list for storage; splitTags reverses it.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
