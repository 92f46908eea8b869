package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Rule failures (insufficient points, duplicate purchase, already-reviewed
// week) are boolean results, not errors. These sentinels cover boundary
// violations and lookups only.

var (
	// Catalog errors
	ErrItemNotFound = errors.New("shop item not found")

	// Equip errors; ownership is validated at the call boundary
	ErrItemNotOwned    = errors.New("item has not been unlocked")
	ErrUnknownCategory = errors.New("unknown accessory category")

	// Check-in errors
	ErrInvalidMood = errors.New("mood must be between 1 and 5")

	// Companion errors
	ErrNoCompanion     = errors.New("no companion exists yet")
	ErrCompanionExists = errors.New("companion already created")
	ErrSpeciesLocked   = errors.New("companion species not unlocked")

	// Export errors
	ErrUnknownFormat = errors.New("unknown export format")
)
