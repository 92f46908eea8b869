package shop_test

import (
	"testing"
	"time"

	"github.com/ReedRawlings/moodlet/internal/app/shop"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

var (
	hatA = domain.Accessory{ID: "party_hat", Name: "Party Hat", Category: domain.CategoryHat, Price: 10}
	hatB = domain.Accessory{ID: "pizza_hat", Name: "Pizza Hat", Category: domain.CategoryHat, Price: 20}
	bg   = domain.Background{ID: "meadow", Name: "Sunny Meadow", Price: 12}
)

func richProfile(pts int) *domain.Profile {
	p := domain.NewProfile("p1")
	p.TotalPoints = pts
	return p
}

func TestPurchase(t *testing.T) {
	p := richProfile(25)

	if !shop.Purchase(p, hatA) {
		t.Fatal("purchase within balance should succeed")
	}
	if p.TotalPoints != 15 {
		t.Errorf("expected 15 points left, got %d", p.TotalPoints)
	}
	if !p.HasUnlockedAccessory(hatA.ID) {
		t.Error("item not unlocked")
	}
}

func TestPurchase_InsufficientPoints(t *testing.T) {
	p := richProfile(5)

	if shop.Purchase(p, hatA) {
		t.Fatal("purchase over balance should fail")
	}
	if p.TotalPoints != 5 {
		t.Errorf("failed purchase mutated balance: %d", p.TotalPoints)
	}
	if p.HasUnlockedAccessory(hatA.ID) {
		t.Error("failed purchase unlocked the item")
	}
}

func TestPurchase_DuplicateChargedOnce(t *testing.T) {
	p := richProfile(50)

	if !shop.Purchase(p, hatA) {
		t.Fatal("first purchase should succeed")
	}
	if shop.Purchase(p, hatA) {
		t.Error("second purchase of owned item should fail")
	}
	if p.TotalPoints != 40 {
		t.Errorf("charged more than once: %d", p.TotalPoints)
	}
}

func TestPurchase_PremiumGate(t *testing.T) {
	crown := domain.Accessory{ID: "crown", Category: domain.CategoryHat, Price: 10, IsPremiumOnly: true}
	p := richProfile(100)

	if shop.Purchase(p, crown) {
		t.Fatal("premium item sold without entitlement")
	}
	p.IsPremium = true
	if !shop.Purchase(p, crown) {
		t.Error("premium item refused despite entitlement")
	}
}

func TestPurchase_StreakMilestoneGate(t *testing.T) {
	cap := domain.Accessory{ID: "flame_cap", Category: domain.CategoryHat, Price: 10, RequiredStreakMilestone: 7}
	p := richProfile(100)
	p.LongestStreak = 6

	if shop.Purchase(p, cap) {
		t.Fatal("milestone item sold below required streak")
	}
	p.LongestStreak = 7
	if !shop.Purchase(p, cap) {
		t.Error("milestone item refused at required streak")
	}
}

func TestPurchase_Background(t *testing.T) {
	p := richProfile(20)

	if !shop.Purchase(p, bg) {
		t.Fatal("background purchase should succeed")
	}
	if !p.HasUnlockedBackground(bg.ID) {
		t.Error("background not unlocked")
	}
	if p.HasUnlockedAccessory(bg.ID) {
		t.Error("background leaked into the accessory set")
	}
}

func TestEquip_CategoryExclusive(t *testing.T) {
	c := domain.NewCompanion("c1", "Mochi", domain.SpeciesCat, time.Now())

	shop.Equip(c, hatA)
	shop.Equip(c, hatB)

	if got, _ := c.EquippedIn(domain.CategoryHat); got != hatB.ID {
		t.Errorf("expected %s equipped, got %s", hatB.ID, got)
	}
	if len(c.EquippedAccessories) != 1 {
		t.Errorf("expected exactly one equipped hat, got %d items", len(c.EquippedAccessories))
	}
}

func TestEquip_BackgroundIndependent(t *testing.T) {
	c := domain.NewCompanion("c1", "Mochi", domain.SpeciesCat, time.Now())
	shop.Equip(c, hatA)

	shop.EquipBackground(c, bg)
	if got, _ := c.EquippedIn(domain.CategoryHat); got != hatA.ID {
		t.Error("equipping a background disturbed accessories")
	}
	if c.EquippedBackgroundID != bg.ID {
		t.Errorf("background not equipped: %q", c.EquippedBackgroundID)
	}

	shop.UnequipBackground(c)
	if c.EquippedBackgroundID != "" {
		t.Error("background not cleared")
	}
}

func TestUnequip_AlwaysLegal(t *testing.T) {
	c := domain.NewCompanion("c1", "Mochi", domain.SpeciesCat, time.Now())

	shop.Unequip(c, domain.CategoryHat) // nothing equipped, still fine

	shop.Equip(c, hatA)
	shop.Unequip(c, domain.CategoryHat)
	if _, ok := c.EquippedIn(domain.CategoryHat); ok {
		t.Error("hat still equipped after unequip")
	}
}

func TestCatalog_StableAndPriced(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range shop.CatalogAccessories() {
		if a.Price <= 0 {
			t.Errorf("accessory %s has non-positive price", a.ID)
		}
		if !a.Category.Valid() {
			t.Errorf("accessory %s has unknown category %q", a.ID, a.Category)
		}
		if seen[a.ID] {
			t.Errorf("duplicate catalog id %s", a.ID)
		}
		seen[a.ID] = true
	}
	for _, b := range shop.CatalogBackgrounds() {
		if b.Price <= 0 {
			t.Errorf("background %s has non-positive price", b.ID)
		}
		if seen[b.ID] {
			t.Errorf("duplicate catalog id %s", b.ID)
		}
		seen[b.ID] = true
	}
}
