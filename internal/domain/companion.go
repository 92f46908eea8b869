package domain

import "time"

// Species identifies a companion kind. Cat is the free default; the rest
// require premium entitlement.
type Species string

const (
	SpeciesCat     Species = "cat"
	SpeciesBear    Species = "bear"
	SpeciesBunny   Species = "bunny"
	SpeciesFrog    Species = "frog"
	SpeciesFox     Species = "fox"
	SpeciesPenguin Species = "penguin"
)

// AllSpecies returns every companion species in display order.
func AllSpecies() []Species {
	return []Species{SpeciesCat, SpeciesBear, SpeciesBunny, SpeciesFrog, SpeciesFox, SpeciesPenguin}
}

// IsPremium reports whether the species requires an active subscription.
func (s Species) IsPremium() bool { return s != SpeciesCat }

// Companion is the user's virtual pet. At most one equipped accessory per
// category, plus at most one equipped background. Equip state references
// catalog item IDs, never copies.
type Companion struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Species   Species   `json:"species"`
	CreatedAt time.Time `json:"created_at"`

	EquippedAccessories  map[AccessoryCategory]string `json:"equipped_accessories"` // category -> accessory id
	EquippedBackgroundID string                       `json:"equipped_background_id,omitempty"`
}

// NewCompanion creates a companion with empty equip state.
func NewCompanion(id, name string, species Species, createdAt time.Time) *Companion {
	return &Companion{
		ID:                  id,
		Name:                name,
		Species:             species,
		CreatedAt:           createdAt,
		EquippedAccessories: make(map[AccessoryCategory]string),
	}
}

// HasEquippedAccessories reports whether anything is currently worn.
func (c *Companion) HasEquippedAccessories() bool {
	return len(c.EquippedAccessories) > 0
}

// EquippedIn returns the accessory equipped in a category, if any.
func (c *Companion) EquippedIn(cat AccessoryCategory) (string, bool) {
	id, ok := c.EquippedAccessories[cat]
	return id, ok
}
