package badges_test

import (
	"testing"
	"time"

	"github.com/ReedRawlings/moodlet/internal/app/badges"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

// tickClock advances one second per Now call so repeated evaluations would
// produce distinct timestamps if a badge were ever re-stamped.
type tickClock struct{ t time.Time }

func (c *tickClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newEvaluator() *badges.Evaluator {
	return badges.NewEvaluator(&tickClock{t: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)})
}

func TestCheckAndAward_FirstMood(t *testing.T) {
	ev := newEvaluator()
	p := domain.NewProfile("p1")

	earned := ev.CheckAndAward(domain.BadgeSnapshot{Profile: p, EntryCount: 1})

	if len(earned) != 1 || earned[0].ID != domain.BadgeFirstMood {
		t.Fatalf("expected first-mood badge, got %v", earned)
	}
	if !p.HasBadge(domain.BadgeFirstMood) {
		t.Error("badge not recorded on profile")
	}
	if earned[0].EarnedAt.IsZero() || !earned[0].EarnedAt.Equal(p.Badges[domain.BadgeFirstMood]) {
		t.Errorf("earned-at %v does not match profile timestamp %v",
			earned[0].EarnedAt, p.Badges[domain.BadgeFirstMood])
	}
}

func TestCheckAndAward_StreakBadges(t *testing.T) {
	ev := newEvaluator()
	p := domain.NewProfile("p1")
	p.LongestStreak = 5

	ev.CheckAndAward(domain.BadgeSnapshot{Profile: p, EntryCount: 5})

	for _, id := range []string{domain.BadgeStreak3Day, domain.BadgeStreak5Day} {
		if !p.HasBadge(id) {
			t.Errorf("expected %s earned at longest streak 5", id)
		}
	}
	if p.HasBadge(domain.BadgeFirstPurchase) {
		t.Error("purchase badge earned with no purchases")
	}
}

func TestCheckAndAward_Idempotent(t *testing.T) {
	ev := newEvaluator()
	p := domain.NewProfile("p1")
	p.LongestStreak = 3
	p.UnlockedAccessoryIDs["party_hat"] = true

	ev.CheckAndAward(domain.BadgeSnapshot{Profile: p, EntryCount: 2})
	first := make(map[string]time.Time, len(p.Badges))
	for id, at := range p.Badges {
		first[id] = at
	}

	again := ev.CheckAndAward(domain.BadgeSnapshot{Profile: p, EntryCount: 2})
	if len(again) != 0 {
		t.Errorf("second run re-earned badges: %v", again)
	}
	if len(p.Badges) != len(first) {
		t.Errorf("badge set changed: %d -> %d", len(first), len(p.Badges))
	}
	for id, at := range first {
		if !p.Badges[id].Equal(at) {
			t.Errorf("badge %s timestamp changed: %v -> %v", id, at, p.Badges[id])
		}
	}
}

func TestCheckAndAward_DressUpNeedsCompanion(t *testing.T) {
	ev := newEvaluator()
	p := domain.NewProfile("p1")

	// No companion at all; predicate must tolerate nil
	ev.CheckAndAward(domain.BadgeSnapshot{Profile: p})
	if p.HasBadge(domain.BadgeDressUp) {
		t.Fatal("dress-up earned without a companion")
	}

	c := domain.NewCompanion("c1", "Mochi", domain.SpeciesCat, time.Now())
	ev.CheckAndAward(domain.BadgeSnapshot{Profile: p, Companion: c})
	if p.HasBadge(domain.BadgeDressUp) {
		t.Fatal("dress-up earned with nothing equipped")
	}

	c.EquippedAccessories[domain.CategoryHat] = "party_hat"
	ev.CheckAndAward(domain.BadgeSnapshot{Profile: p, Companion: c})
	if !p.HasBadge(domain.BadgeDressUp) {
		t.Error("dress-up not earned with an equipped accessory")
	}
}

func TestEarn_KeepsOriginalTimestamp(t *testing.T) {
	ev := newEvaluator()
	p := domain.NewProfile("p1")

	if !ev.Earn(p, domain.BadgeFirstMood) {
		t.Fatal("first earn should succeed")
	}
	at := p.Badges[domain.BadgeFirstMood]

	if ev.Earn(p, domain.BadgeFirstMood) {
		t.Error("second earn should be a no-op")
	}
	if !p.Badges[domain.BadgeFirstMood].Equal(at) {
		t.Error("earn overwrote the original timestamp")
	}
}

type memStores struct {
	profile   *domain.Profile
	companion *domain.Companion
	count     int
	saves     int
}

func (m *memStores) LoadProfile() (*domain.Profile, error) { return m.profile, nil }
func (m *memStores) SaveProfile(p *domain.Profile) error   { m.profile = p; m.saves++; return nil }
func (m *memStores) LoadCompanion() (*domain.Companion, error) {
	if m.companion == nil {
		return nil, domain.ErrNoCompanion
	}
	return m.companion, nil
}
func (m *memStores) SaveCompanion(c *domain.Companion) error { m.companion = c; return nil }

func (m *memStores) InsertEntry(domain.MoodEntry) error { return nil }
func (m *memStores) EntriesOn(time.Time) ([]domain.MoodEntry, error) {
	return nil, nil
}
func (m *memStores) EntriesBetween(time.Time, time.Time) ([]domain.MoodEntry, error) {
	return nil, nil
}
func (m *memStores) EntryCount() (int, error) { return m.count, nil }

func TestReevaluate_AfterPurchaseAndEquip(t *testing.T) {
	ev := newEvaluator()
	p := domain.NewProfile("p1")
	p.Badges[domain.BadgeFirstMood] = time.Now()
	stores := &memStores{profile: p, count: 1}

	// A purchase just landed on the profile.
	p.UnlockedAccessoryIDs["party_hat"] = true
	earned, err := ev.Reevaluate(stores, stores, p)
	if err != nil {
		t.Fatalf("Reevaluate: %v", err)
	}
	if len(earned) != 1 || earned[0].ID != domain.BadgeFirstPurchase {
		t.Fatalf("expected first-purchase badge, got %v", earned)
	}
	if stores.saves != 1 {
		t.Errorf("profile saved %d times, want 1", stores.saves)
	}

	// Then the item gets equipped.
	c := domain.NewCompanion("c1", "Mochi", domain.SpeciesCat, time.Now())
	c.EquippedAccessories[domain.CategoryHat] = "party_hat"
	stores.companion = c
	earned, err = ev.Reevaluate(stores, stores, p)
	if err != nil {
		t.Fatalf("Reevaluate: %v", err)
	}
	if len(earned) != 1 || earned[0].ID != domain.BadgeDressUp {
		t.Fatalf("expected dress-up badge, got %v", earned)
	}

	// Nothing new: no badges, no save.
	earned, err = ev.Reevaluate(stores, stores, p)
	if err != nil {
		t.Fatalf("Reevaluate: %v", err)
	}
	if len(earned) != 0 {
		t.Errorf("re-run earned badges: %v", earned)
	}
	if stores.saves != 2 {
		t.Errorf("profile saved %d times, want 2", stores.saves)
	}
}
