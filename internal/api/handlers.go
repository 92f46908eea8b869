package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ReedRawlings/moodlet/internal/app/badges"
	"github.com/ReedRawlings/moodlet/internal/app/checkin"
	"github.com/ReedRawlings/moodlet/internal/app/points"
	"github.com/ReedRawlings/moodlet/internal/app/reminder"
	"github.com/ReedRawlings/moodlet/internal/app/review"
	"github.com/ReedRawlings/moodlet/internal/app/shop"
	"github.com/ReedRawlings/moodlet/internal/app/streak"
	"github.com/ReedRawlings/moodlet/internal/domain"
	"github.com/ReedRawlings/moodlet/internal/export"
	"github.com/ReedRawlings/moodlet/internal/infra/metrics"
)

// --- /api/profile ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.PointsBalance.Set(float64(p.TotalPoints))
	metrics.StreakCurrent.Set(float64(p.CurrentStreak))
	metrics.StreakLongest.Set(float64(p.LongestStreak))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":             p.ID,
		"total_points":   p.TotalPoints,
		"current_streak": p.CurrentStreak,
		"longest_streak": p.LongestStreak,
		"is_premium":     p.IsPremium,
		"badge_count":    len(p.Badges),
	})
}

// --- /api/checkins ---

type checkInRequest struct {
	Mood         string   `json:"mood"` // name or 1-5 ordinal
	Note         string   `json:"note,omitempty"`
	ActivityTags []string `json:"activity_tags,omitempty"`
	PeopleTags   []string `json:"people_tags,omitempty"`
}

// parseMoodValue accepts either a mood name ("happy") or its ordinal ("5").
func parseMoodValue(s string) (domain.Mood, bool) {
	if m, ok := domain.ParseMood(s); ok {
		return m, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || !domain.Mood(n).Valid() {
		return 0, false
	}
	return domain.Mood(n), true
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mood, ok := parseMoodValue(req.Mood)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidMood.Error())
		return
	}

	res, err := s.checkin.CheckIn(checkin.Options{
		Mood:         mood,
		Note:         req.Note,
		ActivityTags: req.ActivityTags,
		PeopleTags:   req.PeopleTags,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.CheckIns.WithLabelValues(mood.String()).Inc()
	if res.CapReached {
		metrics.CheckInsCapped.Inc()
	}
	if res.PointsEarned > 0 {
		metrics.PointsEarned.WithLabelValues("entry").Add(float64(res.PointsEarned))
	}
	if res.StreakBonus > 0 {
		metrics.PointsEarned.WithLabelValues("streak_bonus").Add(float64(res.StreakBonus))
	}
	for _, b := range res.NewBadges {
		metrics.BadgesUnlocked.WithLabelValues(b.ID).Inc()
	}
	if res.StreakReset {
		metrics.StreakResets.Inc()
	}
	metrics.PointsBalance.Set(float64(res.TotalPoints))
	metrics.StreakCurrent.Set(float64(res.CurrentStreak))

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from: want YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to: want YYYY-MM-DD")
			return
		}
		to = t.AddDate(0, 0, 1) // inclusive end date
	}

	entries, err := s.checkin.History(from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// --- /api/streak ---

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := s.clock.Now()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current":              p.CurrentStreak,
		"longest":              p.LongestStreak,
		"grace_used":           p.StreakGraceUsed,
		"at_risk":              streak.AtRisk(p, now),
		"next_milestone":       streak.NextMilestone(p),
		"days_until_milestone": streak.DaysUntilNextMilestone(p),
		"next_milestone_bonus": points.MilestoneBonus(streak.NextMilestone(p)),
	})
}

// --- /api/badges ---

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type badgeStatus struct {
		ID          string     `json:"id"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Earned      bool       `json:"earned"`
		EarnedAt    *time.Time `json:"earned_at,omitempty"`
	}

	defs := badges.All()
	out := make([]badgeStatus, 0, len(defs))
	for _, def := range defs {
		b := badgeStatus{ID: def.ID, Name: def.Name, Description: def.Description}
		if at, ok := p.Badges[def.ID]; ok {
			b.Earned = true
			b.EarnedAt = &at
		}
		out = append(out, b)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": out,
	})
}

// --- /api/prompts ---

func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	rng := rand.New(rand.NewSource(s.clock.Now().UnixNano()))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prompts": reminder.JournalPrompts(3, rng),
	})
}

// --- /api/shop/catalog ---

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	accessories, err := s.db.ListAccessories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	backgrounds, err := s.db.ListBackgrounds()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	accOut := make([]map[string]interface{}, 0, len(accessories))
	for _, a := range accessories {
		accOut = append(accOut, catalogAccessory(p, a))
	}
	bgOut := make([]map[string]interface{}, 0, len(backgrounds))
	for _, b := range backgrounds {
		bgOut = append(bgOut, catalogBackground(p, b))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance":     p.TotalPoints,
		"accessories": accOut,
		"backgrounds": bgOut,
	})
}

func catalogAccessory(p *domain.Profile, a domain.Accessory) map[string]interface{} {
	return map[string]interface{}{
		"id":                        a.ID,
		"name":                      a.Name,
		"category":                  a.Category,
		"price":                     a.Price,
		"is_premium_only":           a.IsPremiumOnly,
		"required_streak_milestone": a.RequiredStreakMilestone,
		"owned":                     p.HasUnlockedAccessory(a.ID),
		"purchasable":               shop.CanPurchase(p, a),
	}
}

func catalogBackground(p *domain.Profile, b domain.Background) map[string]interface{} {
	return map[string]interface{}{
		"id":                        b.ID,
		"name":                      b.Name,
		"price":                     b.Price,
		"is_premium_only":           b.IsPremiumOnly,
		"required_streak_milestone": b.RequiredStreakMilestone,
		"owned":                     p.HasUnlockedBackground(b.ID),
		"purchasable":               shop.CanPurchase(p, b),
	}
}

// --- /api/shop/purchase ---

type purchaseRequest struct {
	ItemID string `json:"item_id"`
	Kind   string `json:"kind"` // accessory or background
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.lookupItem(req.ItemID, domain.ItemKind(req.Kind))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !shop.Purchase(p, item) {
		reason := refusalReason(p, item)
		metrics.ShopPurchasesRefused.WithLabelValues(reason).Inc()
		writeError(w, http.StatusConflict, "cannot purchase: "+reason)
		return
	}

	if err := s.db.SaveProfile(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ShopPurchases.WithLabelValues(string(item.ItemKind())).Inc()
	metrics.PointsSpent.Add(float64(item.ItemPrice()))
	metrics.PointsBalance.Set(float64(p.TotalPoints))

	// First purchase may unlock a badge.
	if err := s.awardBadges(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item_id": item.ItemID(),
		"kind":    item.ItemKind(),
		"balance": p.TotalPoints,
	})
}

// lookupItem resolves an item id against the catalog. When kind is empty
// both tables are tried, accessories first.
func (s *Server) lookupItem(id string, kind domain.ItemKind) (domain.ShopItem, error) {
	switch kind {
	case domain.KindAccessory:
		a, err := s.db.GetAccessory(id)
		if err != nil {
			return nil, err
		}
		return *a, nil
	case domain.KindBackground:
		b, err := s.db.GetBackground(id)
		if err != nil {
			return nil, err
		}
		return *b, nil
	default:
		if a, err := s.db.GetAccessory(id); err == nil {
			return *a, nil
		}
		b, err := s.db.GetBackground(id)
		if err != nil {
			return nil, err
		}
		return *b, nil
	}
}

func refusalReason(p *domain.Profile, item domain.ShopItem) string {
	switch {
	case item.ItemKind() == domain.KindAccessory && p.HasUnlockedAccessory(item.ItemID()),
		item.ItemKind() == domain.KindBackground && p.HasUnlockedBackground(item.ItemID()):
		return "owned"
	case item.PremiumOnly() && !p.IsPremium:
		return "premium"
	case item.StreakMilestone() > 0 && p.LongestStreak < item.StreakMilestone():
		return "milestone"
	default:
		return "balance"
	}
}

// awardBadges re-runs badge evaluation outside the check-in pipeline
// (purchases and equips can unlock badges too).
func (s *Server) awardBadges(p *domain.Profile) error {
	ev := badges.NewEvaluator(s.clock)
	newBadges, err := ev.Reevaluate(s.db, s.db, p)
	if err != nil {
		return err
	}
	for _, b := range newBadges {
		metrics.BadgesUnlocked.WithLabelValues(b.ID).Inc()
	}
	return nil
}

// --- /api/companion ---

type createCompanionRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
}

func (s *Server) handleCreateCompanion(w http.ResponseWriter, r *http.Request) {
	var req createCompanionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.db.LoadCompanion(); err == nil {
		writeError(w, http.StatusConflict, domain.ErrCompanionExists.Error())
		return
	}

	species := domain.Species(req.Species)
	valid := false
	for _, sp := range domain.AllSpecies() {
		if sp == species {
			valid = true
		}
	}
	if !valid {
		writeError(w, http.StatusBadRequest, "unknown species")
		return
	}

	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if species.IsPremium() && !p.IsPremium {
		writeError(w, http.StatusForbidden, domain.ErrSpeciesLocked.Error())
		return
	}

	c := domain.NewCompanion(uuid.NewString(), req.Name, species, s.clock.Now())
	if err := s.db.SaveCompanion(c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCompanion(w http.ResponseWriter, r *http.Request) {
	c, err := s.db.LoadCompanion()
	if err == domain.ErrNoCompanion {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- /api/companion/equip ---

type equipRequest struct {
	ItemID string `json:"item_id"`
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	var req equipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := s.db.GetAccessory(req.ItemID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !p.HasUnlockedAccessory(a.ID) {
		writeError(w, http.StatusForbidden, domain.ErrItemNotOwned.Error())
		return
	}

	c, err := s.db.LoadCompanion()
	if err == domain.ErrNoCompanion {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	shop.Equip(c, *a)
	if err := s.db.SaveCompanion(c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Dressing up may unlock a badge.
	if err := s.awardBadges(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type unequipRequest struct {
	Category string `json:"category"`
}

func (s *Server) handleUnequip(w http.ResponseWriter, r *http.Request) {
	var req unequipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cat := domain.AccessoryCategory(req.Category)
	if !cat.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownCategory.Error())
		return
	}

	c, err := s.db.LoadCompanion()
	if err == domain.ErrNoCompanion {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	shop.Unequip(c, cat)
	if err := s.db.SaveCompanion(c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- /api/companion/background ---

func (s *Server) handleEquipBackground(w http.ResponseWriter, r *http.Request) {
	var req equipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.db.LoadCompanion()
	if err == domain.ErrNoCompanion {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Empty item id clears the background.
	if req.ItemID == "" {
		shop.UnequipBackground(c)
		if err := s.db.SaveCompanion(c); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, c)
		return
	}

	b, err := s.db.GetBackground(req.ItemID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !p.HasUnlockedBackground(b.ID) {
		writeError(w, http.StatusForbidden, domain.ErrItemNotOwned.Error())
		return
	}

	shop.EquipBackground(c, *b)
	if err := s.db.SaveCompanion(c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- /api/review ---

func (s *Server) handleReviewStatus(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := s.clock.Now()
	weekStart, pending := review.UnreviewedWeekStart(p, now)
	resp := map[string]interface{}{
		"pending": pending,
	}
	if pending {
		sum, err := s.summarizeWeek(weekStart)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["week_start"] = domain.DayKey(weekStart)
		resp["summary"] = sum
		resp["bonus"] = points.WeeklyReviewBonus
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteReview(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := s.clock.Now()
	weekStart, pending := review.UnreviewedWeekStart(p, now)
	if !pending {
		writeError(w, http.StatusConflict, "no review pending")
		return
	}

	review.MarkReviewed(p, weekStart)
	if err := s.db.SaveProfile(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ReviewsCompleted.Inc()
	metrics.PointsEarned.WithLabelValues("weekly_review").Add(float64(points.WeeklyReviewBonus))
	metrics.PointsBalance.Set(float64(p.TotalPoints))

	sum, err := s.summarizeWeek(weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"week_start": domain.DayKey(weekStart),
		"bonus":      points.WeeklyReviewBonus,
		"balance":    p.TotalPoints,
		"summary":    sum,
	})
}

func (s *Server) summarizeWeek(weekStart time.Time) (review.Summary, error) {
	entries, err := s.db.EntriesBetween(weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return review.Summary{}, err
	}
	prev, err := s.db.EntriesBetween(weekStart.AddDate(0, 0, -7), weekStart)
	if err != nil {
		return review.Summary{}, err
	}
	return review.Summarize(entries, prev), nil
}

// --- /api/export ---

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Everything ever logged.
	entries, err := s.db.EntriesBetween(time.Unix(0, 0), s.clock.Now().AddDate(0, 0, 1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch format {
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="moodlet-export.csv"`)
	case export.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	// Headers are already sent; a mid-stream failure cannot be reported.
	_ = export.Write(w, format, entries)
}

// --- /api/reminder ---

func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.LoadProfile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := s.clock.Now()
	sentToday, err := s.db.RemindersSentOn(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	allowed := s.policy.Allows(now, sentToday)
	resp := map[string]interface{}{
		"allowed":    allowed,
		"sent_today": sentToday,
	}
	if allowed {
		rng := rand.New(rand.NewSource(now.UnixNano()))
		msg := reminder.MessageForProfile(p, now, rng)
		if err := s.db.LogReminder(msg, now); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["message"] = msg
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- /api/data/erase ---

func (s *Server) handleEraseData(w http.ResponseWriter, r *http.Request) {
	if err := s.db.EraseAll(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "erased",
	})
}
