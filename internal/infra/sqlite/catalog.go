package sqlite

import (
	"database/sql"
	"time"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// UpsertAccessory inserts or updates one catalog accessory.
func (d *DB) UpsertAccessory(a domain.Accessory) error {
	_, err := d.db.Exec(
		`INSERT INTO accessories (id, name, category, price, premium_only, required_milestone)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			category=excluded.category,
			price=excluded.price,
			premium_only=excluded.premium_only,
			required_milestone=excluded.required_milestone`,
		a.ID, a.Name, string(a.Category), a.Price, a.IsPremiumOnly, a.RequiredStreakMilestone,
	)
	return err
}

// UpsertBackground inserts or updates one catalog background.
func (d *DB) UpsertBackground(b domain.Background) error {
	_, err := d.db.Exec(
		`INSERT INTO backgrounds (id, name, price, premium_only, required_milestone)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			price=excluded.price,
			premium_only=excluded.premium_only,
			required_milestone=excluded.required_milestone`,
		b.ID, b.Name, b.Price, b.IsPremiumOnly, b.RequiredStreakMilestone,
	)
	return err
}

// GetAccessory retrieves one accessory, or ErrItemNotFound.
func (d *DB) GetAccessory(id string) (*domain.Accessory, error) {
	row := d.db.QueryRow(
		`SELECT id, name, category, price, premium_only, required_milestone
		 FROM accessories WHERE id = ?`, id,
	)
	var a domain.Accessory
	var category string
	err := row.Scan(&a.ID, &a.Name, &category, &a.Price, &a.IsPremiumOnly, &a.RequiredStreakMilestone)
	if err == sql.ErrNoRows {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Category = domain.AccessoryCategory(category)
	return &a, nil
}

// GetBackground retrieves one background, or ErrItemNotFound.
func (d *DB) GetBackground(id string) (*domain.Background, error) {
	row := d.db.QueryRow(
		`SELECT id, name, price, premium_only, required_milestone
		 FROM backgrounds WHERE id = ?`, id,
	)
	var b domain.Background
	err := row.Scan(&b.ID, &b.Name, &b.Price, &b.IsPremiumOnly, &b.RequiredStreakMilestone)
	if err == sql.ErrNoRows {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListAccessories returns the full accessory catalog ordered by category then price.
func (d *DB) ListAccessories() ([]domain.Accessory, error) {
	rows, err := d.db.Query(
		`SELECT id, name, category, price, premium_only, required_milestone
		 FROM accessories ORDER BY category, price, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Accessory
	for rows.Next() {
		var a domain.Accessory
		var category string
		if err := rows.Scan(&a.ID, &a.Name, &category, &a.Price, &a.IsPremiumOnly, &a.RequiredStreakMilestone); err != nil {
			return nil, err
		}
		a.Category = domain.AccessoryCategory(category)
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListBackgrounds returns the full background catalog ordered by price.
func (d *DB) ListBackgrounds() ([]domain.Background, error) {
	rows, err := d.db.Query(
		`SELECT id, name, price, premium_only, required_milestone
		 FROM backgrounds ORDER BY price, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Background
	for rows.Next() {
		var b domain.Background
		if err := rows.Scan(&b.ID, &b.Name, &b.Price, &b.IsPremiumOnly, &b.RequiredStreakMilestone); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// LogReminder records a delivered reminder.
func (d *DB) LogReminder(message string, sentAt time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO reminders (message, sent_at) VALUES (?, ?)`,
		message, sentAt.Unix(),
	)
	return err
}

// RemindersSentOn counts reminders delivered on the given calendar day.
func (d *DB) RemindersSentOn(day time.Time) (int, error) {
	start := domain.StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM reminders WHERE sent_at >= ? AND sent_at < ?`,
		start.Unix(), end.Unix(),
	).Scan(&n)
	return n, err
}
