package shop

import (
	"fmt"

	"github.com/ReedRawlings/moodlet/internal/domain"
)

// Built-in shop catalog. Item IDs are stable slugs (they double as image
// names for the presentation layer); renaming one would orphan purchases.

// CatalogAccessories returns every accessory the shop sells.
func CatalogAccessories() []domain.Accessory {
	return []domain.Accessory{
		// Glasses
		{ID: "cool_glasses", Name: "Cool Glasses", Category: domain.CategoryGlasses, Price: 8},
		{ID: "orange_glasses", Name: "Orange Glasses", Category: domain.CategoryGlasses, Price: 10},
		{ID: "reading_glasses", Name: "Reading Glasses", Category: domain.CategoryGlasses, Price: 12},
		{ID: "star_glasses", Name: "Star Glasses", Category: domain.CategoryGlasses, Price: 15},

		// Hats
		{ID: "party_hat", Name: "Party Hat", Category: domain.CategoryHat, Price: 10},
		{ID: "nurse_hat", Name: "Nurse Hat", Category: domain.CategoryHat, Price: 15},
		{ID: "pizza_hat", Name: "Pizza Hat", Category: domain.CategoryHat, Price: 20},
		{ID: "crown", Name: "Golden Crown", Category: domain.CategoryHat, Price: 60, IsPremiumOnly: true},
		{ID: "flame_cap", Name: "Flame Cap", Category: domain.CategoryHat, Price: 25, RequiredStreakMilestone: 7},

		// Tops
		{ID: "blue_jacket", Name: "Blue Jacket", Category: domain.CategoryTop, Price: 15},
		{ID: "skull_shirt", Name: "Skull Shirt", Category: domain.CategoryTop, Price: 12},
		{ID: "varsity_jacket", Name: "Varsity Jacket", Category: domain.CategoryTop, Price: 18},
		{ID: "centurion_cloak", Name: "Centurion Cloak", Category: domain.CategoryTop, Price: 100, RequiredStreakMilestone: 100},

		// Held items
		{ID: "coffee_mug", Name: "Coffee Mug", Category: domain.CategoryHeldItem, Price: 8},
		{ID: "sparkler", Name: "Sparkler", Category: domain.CategoryHeldItem, Price: 30, RequiredStreakMilestone: 30},
	}
}

// CatalogBackgrounds returns every background the shop sells.
func CatalogBackgrounds() []domain.Background {
	return []domain.Background{
		{ID: "meadow", Name: "Sunny Meadow", Price: 12},
		{ID: "night_sky", Name: "Night Sky", Price: 20},
		{ID: "cozy_room", Name: "Cozy Room", Price: 25},
		{ID: "beach", Name: "Beach Day", Price: 35},
		{ID: "aurora", Name: "Aurora", Price: 80, IsPremiumOnly: true},
		{ID: "mountain_peak", Name: "Mountain Peak", Price: 40, RequiredStreakMilestone: 14},
	}
}

// SyncCatalog upserts the built-in catalog into the store. Additive-only:
// items already present are refreshed in place, never removed, so existing
// unlocks stay valid.
func SyncCatalog(store domain.CatalogStore) error {
	for _, a := range CatalogAccessories() {
		if err := store.UpsertAccessory(a); err != nil {
			return fmt.Errorf("sync accessory %s: %w", a.ID, err)
		}
	}
	for _, b := range CatalogBackgrounds() {
		if err := store.UpsertBackground(b); err != nil {
			return fmt.Errorf("sync background %s: %w", b.ID, err)
		}
	}
	return nil
}
