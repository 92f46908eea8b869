package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ReedRawlings/moodlet/internal/app/checkin"
	"github.com/ReedRawlings/moodlet/internal/app/reminder"
	"github.com/ReedRawlings/moodlet/internal/app/shop"
	"github.com/ReedRawlings/moodlet/internal/infra/sqlite"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func testServer(t *testing.T) (*Server, *fakeClock, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shop.SyncCatalog(db); err != nil {
		t.Fatalf("sync catalog: %v", err)
	}

	clock := &fakeClock{now: time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)}
	svc := checkin.NewService(db, db, clock)
	return NewServer(db, svc, clock, reminder.DefaultPolicy()), clock, db
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	rec, body := doJSON(t, srv.Handler(), "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestCheckInEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	h := srv.Handler()

	rec, body := doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{
		"mood":          "happy",
		"note":          "a good day out",
		"activity_tags": []string{"outdoors"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if body["points_earned"] != float64(4) {
		t.Errorf("points_earned = %v, want 4", body["points_earned"])
	}
	if body["current_streak"] != float64(1) {
		t.Errorf("current_streak = %v, want 1", body["current_streak"])
	}

	// Profile reflects the check-in
	rec, body = doJSON(t, h, "GET", "/api/profile", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d", rec.Code)
	}
	if body["total_points"] != float64(4) {
		t.Errorf("total_points = %v, want 4", body["total_points"])
	}
}

func TestCheckInOrdinalMood(t *testing.T) {
	srv, _, _ := testServer(t)
	rec, body := doJSON(t, srv.Handler(), "POST", "/api/checkins", map[string]interface{}{
		"mood": "5",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	entry, ok := body["entry"].(map[string]interface{})
	if !ok || entry["mood"] != float64(5) {
		t.Errorf("entry mood = %v, want 5", body["entry"])
	}
}

func TestCheckInBadMood(t *testing.T) {
	srv, _, _ := testServer(t)
	for _, mood := range []string{"ecstatic", "9", "0"} {
		rec, _ := doJSON(t, srv.Handler(), "POST", "/api/checkins", map[string]interface{}{
			"mood": mood,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("mood %q: status = %d, want 400", mood, rec.Code)
		}
	}
}

func TestListCheckIns(t *testing.T) {
	srv, clock, _ := testServer(t)
	h := srv.Handler()

	for i := 0; i < 3; i++ {
		doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{"mood": "neutral"})
		clock.now = clock.now.AddDate(0, 0, 1)
	}

	rec, body := doJSON(t, h, "GET", "/api/checkins?from=2025-07-15&to=2025-07-16", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}

	rec, _ = doJSON(t, h, "GET", "/api/checkins?from=not-a-date", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", rec.Code)
	}
}

func TestStreakEndpoint(t *testing.T) {
	srv, clock, _ := testServer(t)
	h := srv.Handler()

	for i := 0; i < 3; i++ {
		doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{"mood": "content"})
		clock.now = clock.now.AddDate(0, 0, 1)
	}

	rec, body := doJSON(t, h, "GET", "/api/streak", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["current"] != float64(3) {
		t.Errorf("current = %v, want 3", body["current"])
	}
	if body["next_milestone"] != float64(7) {
		t.Errorf("next_milestone = %v, want 7", body["next_milestone"])
	}
}

func TestBadgesEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	h := srv.Handler()

	doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{"mood": "happy"})

	rec, body := doJSON(t, h, "GET", "/api/badges", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	list, ok := body["badges"].([]interface{})
	if !ok || len(list) != 5 {
		t.Fatalf("badges = %v", body["badges"])
	}
	var firstMoodEarned bool
	for _, raw := range list {
		b := raw.(map[string]interface{})
		if b["id"] == "first_mood" && b["earned"] == true {
			firstMoodEarned = true
		}
	}
	if !firstMoodEarned {
		t.Error("first_mood not earned after a check-in")
	}
}

func TestPurchaseFlow(t *testing.T) {
	srv, _, db := testServer(t)
	h := srv.Handler()

	p, _ := db.LoadProfile()
	p.TotalPoints = 50
	if err := db.SaveProfile(p); err != nil {
		t.Fatal(err)
	}

	rec, body := doJSON(t, h, "POST", "/api/shop/purchase", map[string]interface{}{
		"item_id": "party_hat",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if body["balance"] != float64(40) {
		t.Errorf("balance = %v, want 40", body["balance"])
	}

	// Duplicate purchase refused
	rec, _ = doJSON(t, h, "POST", "/api/shop/purchase", map[string]interface{}{
		"item_id": "party_hat",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	// Unknown item
	rec, _ = doJSON(t, h, "POST", "/api/shop/purchase", map[string]interface{}{
		"item_id": "no_such_item",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want 404", rec.Code)
	}

	// Premium gate
	rec, _ = doJSON(t, h, "POST", "/api/shop/purchase", map[string]interface{}{
		"item_id": "crown",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("premium item status = %d, want 409", rec.Code)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	rec, body := doJSON(t, srv.Handler(), "GET", "/api/shop/catalog", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	accessories, ok := body["accessories"].([]interface{})
	if !ok || len(accessories) == 0 {
		t.Fatalf("accessories = %v", body["accessories"])
	}
	backgrounds, ok := body["backgrounds"].([]interface{})
	if !ok || len(backgrounds) == 0 {
		t.Fatalf("backgrounds = %v", body["backgrounds"])
	}
}

func TestCompanionLifecycle(t *testing.T) {
	srv, _, db := testServer(t)
	h := srv.Handler()

	rec, _ := doJSON(t, h, "GET", "/api/companion/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty companion status = %d, want 404", rec.Code)
	}

	// Premium species locked for free profile
	rec, _ = doJSON(t, h, "POST", "/api/companion/", map[string]interface{}{
		"name": "Pingu", "species": "penguin",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("premium species status = %d, want 403", rec.Code)
	}

	rec, _ = doJSON(t, h, "POST", "/api/companion/", map[string]interface{}{
		"name": "Mochi", "species": "cat",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}

	// Second companion refused
	rec, _ = doJSON(t, h, "POST", "/api/companion/", map[string]interface{}{
		"name": "Extra", "species": "cat",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("second companion status = %d, want 409", rec.Code)
	}

	// Equip without ownership refused
	rec, _ = doJSON(t, h, "POST", "/api/companion/equip", map[string]interface{}{
		"item_id": "party_hat",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("unowned equip status = %d, want 403", rec.Code)
	}

	// Buy then equip
	p, _ := db.LoadProfile()
	p.TotalPoints = 50
	db.SaveProfile(p)
	doJSON(t, h, "POST", "/api/shop/purchase", map[string]interface{}{"item_id": "party_hat"})

	rec, body := doJSON(t, h, "POST", "/api/companion/equip", map[string]interface{}{
		"item_id": "party_hat",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("equip status = %d, body %s", rec.Code, rec.Body)
	}
	equipped, _ := body["equipped_accessories"].(map[string]interface{})
	if equipped["hat"] != "party_hat" {
		t.Errorf("equipped = %v", body["equipped_accessories"])
	}

	// Unequip
	rec, _ = doJSON(t, h, "POST", "/api/companion/unequip", map[string]interface{}{
		"category": "hat",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unequip status = %d", rec.Code)
	}
}

func TestReviewFlow(t *testing.T) {
	srv, clock, _ := testServer(t)
	h := srv.Handler()

	// Log an entry last week (clock starts Tue 2025-07-15; last week runs
	// Sun 2025-07-06 to Sat 2025-07-12).
	clock.now = time.Date(2025, 7, 8, 10, 0, 0, 0, time.UTC)
	doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{"mood": "happy"})
	clock.now = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

	rec, body := doJSON(t, h, "GET", "/api/review", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["pending"] != true {
		t.Fatalf("pending = %v, want true", body["pending"])
	}
	if body["week_start"] != "2025-07-06" {
		t.Errorf("week_start = %v", body["week_start"])
	}

	rec, body = doJSON(t, h, "POST", "/api/review", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body %s", rec.Code, rec.Body)
	}
	if body["bonus"] != float64(3) {
		t.Errorf("bonus = %v, want 3", body["bonus"])
	}

	// Completing twice refused
	rec, _ = doJSON(t, h, "POST", "/api/review", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("second complete status = %d, want 409", rec.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	h := srv.Handler()

	doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{"mood": "happy"})

	req := httptest.NewRequest("GET", "/api/export?format=csv", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("csv status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}

	rec, _ = doJSON(t, h, "GET", "/api/export?format=xml", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", rec.Code)
	}
}

func TestReminderEndpoint(t *testing.T) {
	srv, clock, _ := testServer(t)
	h := srv.Handler()

	rec, body := doJSON(t, h, "GET", "/api/reminder", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["allowed"] != true {
		t.Fatalf("allowed = %v, want true", body["allowed"])
	}
	if body["message"] == "" {
		t.Error("no message returned")
	}

	// Daily cap: second ask is suppressed
	_, body = doJSON(t, h, "GET", "/api/reminder", nil)
	if body["allowed"] != false {
		t.Errorf("second reminder allowed = %v, want false", body["allowed"])
	}

	// Quiet hours
	clock.now = time.Date(2025, 7, 16, 23, 0, 0, 0, time.UTC)
	_, body = doJSON(t, h, "GET", "/api/reminder", nil)
	if body["allowed"] != false {
		t.Errorf("quiet hours allowed = %v, want false", body["allowed"])
	}
}

func TestEraseData(t *testing.T) {
	srv, _, db := testServer(t)
	h := srv.Handler()

	doJSON(t, h, "POST", "/api/checkins", map[string]interface{}{"mood": "happy"})

	rec, _ := doJSON(t, h, "POST", "/api/data/erase", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("erase status = %d", rec.Code)
	}

	n, _ := db.EntryCount()
	if n != 0 {
		t.Errorf("entries after erase = %d", n)
	}
}
