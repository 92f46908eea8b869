// Package shop implements the cosmetic-item economy: purchases gated on
// balance, premium entitlement, and streak milestones, plus single-slot
// equip state on the companion.
package shop

import (
	"github.com/ReedRawlings/moodlet/internal/app/points"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// CanPurchase reports whether a purchase would succeed, without mutating.
// Fails on: already owned, premium-only without entitlement, unmet streak
// milestone, insufficient points.
func CanPurchase(p *domain.Profile, item domain.ShopItem) bool {
	if owned(p, item) {
		return false
	}
	if item.PremiumOnly() && !p.IsPremium {
		return false
	}
	if m := item.StreakMilestone(); m > 0 && p.LongestStreak < m {
		return false
	}
	return p.TotalPoints >= item.ItemPrice()
}

// Purchase deducts the price and unlocks the item. Returns false without
// mutation when any gate fails. Purchases are irreversible; there is no
// refund path.
func Purchase(p *domain.Profile, item domain.ShopItem) bool {
	if !CanPurchase(p, item) {
		return false
	}
	if !points.Spend(p, item.ItemPrice()) {
		return false
	}
	switch item.ItemKind() {
	case domain.KindAccessory:
		p.UnlockedAccessoryIDs[item.ItemID()] = true
	case domain.KindBackground:
		p.UnlockedBackgroundIDs[item.ItemID()] = true
	}
	return true
}

func owned(p *domain.Profile, item domain.ShopItem) bool {
	switch item.ItemKind() {
	case domain.KindAccessory:
		return p.HasUnlockedAccessory(item.ItemID())
	case domain.KindBackground:
		return p.HasUnlockedBackground(item.ItemID())
	}
	return false
}

// Equip puts an accessory on the companion, replacing whatever occupies its
// category. At most one accessory per category is worn at any time.
// Ownership of the item is a caller-side precondition.
func Equip(c *domain.Companion, a domain.Accessory) {
	c.EquippedAccessories[a.Category] = a.ID
}

// Unequip clears a category. Always legal.
func Unequip(c *domain.Companion, cat domain.AccessoryCategory) {
	delete(c.EquippedAccessories, cat)
}

// EquipBackground sets the single background slot, independent of accessory
// categories.
func EquipBackground(c *domain.Companion, b domain.Background) {
	c.EquippedBackgroundID = b.ID
}

// UnequipBackground clears the background slot. Always legal.
func UnequipBackground(c *domain.Companion) {
	c.EquippedBackgroundID = ""
}
