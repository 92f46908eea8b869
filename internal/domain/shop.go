package domain

// AccessoryCategory slots accessories on the companion. Equipping is
// exclusive within a category.
type AccessoryCategory string

const (
	CategoryEyes     AccessoryCategory = "eyes"
	CategoryGlasses  AccessoryCategory = "glasses"
	CategoryHat      AccessoryCategory = "hat"
	CategoryTop      AccessoryCategory = "top"
	CategoryHeldItem AccessoryCategory = "held_item"
)

// AllCategories returns every accessory category in render order.
func AllCategories() []AccessoryCategory {
	return []AccessoryCategory{CategoryEyes, CategoryTop, CategoryGlasses, CategoryHat, CategoryHeldItem}
}

// Valid reports whether the category is known.
func (c AccessoryCategory) Valid() bool {
	for _, cat := range AllCategories() {
		if c == cat {
			return true
		}
	}
	return false
}

// ItemKind distinguishes the two catalog item types.
type ItemKind string

const (
	KindAccessory  ItemKind = "accessory"
	KindBackground ItemKind = "background"
)

// Accessory is a purchasable cosmetic worn by the companion.
// Catalog sync is additive-only; unlocked items are never removed.
type Accessory struct {
	ID                      string            `json:"id"` // stable slug, doubles as image name
	Name                    string            `json:"name"`
	Category                AccessoryCategory `json:"category"`
	Price                   int               `json:"price"`
	IsPremiumOnly           bool              `json:"is_premium_only"`
	RequiredStreakMilestone int               `json:"required_streak_milestone,omitempty"` // 0 = none
}

// Background is a purchasable scene behind the companion.
type Background struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Price                   int    `json:"price"`
	IsPremiumOnly           bool   `json:"is_premium_only"`
	RequiredStreakMilestone int    `json:"required_streak_milestone,omitempty"`
}

// ShopItem is the common purchase surface over accessories and backgrounds.
type ShopItem interface {
	ItemID() string
	ItemKind() ItemKind
	ItemPrice() int
	PremiumOnly() bool
	StreakMilestone() int
}

func (a Accessory) ItemID() string       { return a.ID }
func (a Accessory) ItemKind() ItemKind   { return KindAccessory }
func (a Accessory) ItemPrice() int       { return a.Price }
func (a Accessory) PremiumOnly() bool    { return a.IsPremiumOnly }
func (a Accessory) StreakMilestone() int { return a.RequiredStreakMilestone }

func (b Background) ItemID() string       { return b.ID }
func (b Background) ItemKind() ItemKind   { return KindBackground }
func (b Background) ItemPrice() int       { return b.Price }
func (b Background) PremiumOnly() bool    { return b.IsPremiumOnly }
func (b Background) StreakMilestone() int { return b.RequiredStreakMilestone }
