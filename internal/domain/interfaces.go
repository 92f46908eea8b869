package domain

import "time"

// ─── Store Interfaces ───────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the engagement rules depend on them.

// ProfileStore abstracts persistence of the profile aggregate and the
// companion. Load materializes a default record when none exists; every
// entry point may therefore assume a profile is present.
type ProfileStore interface {
	LoadProfile() (*Profile, error)
	SaveProfile(*Profile) error

	LoadCompanion() (*Companion, error) // nil, ErrNoCompanion when absent
	SaveCompanion(*Companion) error
}

// EntryStore abstracts the append-only mood entry log.
type EntryStore interface {
	InsertEntry(MoodEntry) error
	EntriesOn(day time.Time) ([]MoodEntry, error)
	EntriesBetween(from, to time.Time) ([]MoodEntry, error)
	EntryCount() (int, error)
}

// CatalogStore abstracts the shop catalog. Sync is additive-only.
type CatalogStore interface {
	UpsertAccessory(Accessory) error
	UpsertBackground(Background) error
	GetAccessory(id string) (*Accessory, error)
	GetBackground(id string) (*Background, error)
	ListAccessories() ([]Accessory, error)
	ListBackgrounds() ([]Background, error)
}
