package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/emberoak/caterserve/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewStore(d)
}

func testEvent(title string, date time.Time) *Event {
	return &Event{
		Title:      title,
		EventDate:  date,
		Venue:      "The Conservatory",
		GuestCount: 80,
		QuoteCents: 450000,
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	e := testEvent("Hartley Wedding", time.Date(2026, 10, 3, 17, 0, 0, 0, time.UTC))
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expected event ID to be set")
	}
	if e.Status != StatusInquiry {
		t.Errorf("got default status %q, want %q", e.Status, StatusInquiry)
	}

	got, err := store.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Hartley Wedding" {
		t.Errorf("got title %q, want %q", got.Title, "Hartley Wedding")
	}
	if got.GuestCount != 80 {
		t.Errorf("got guest_count %d, want 80", got.GuestCount)
	}
}

func TestListEventsByStatusAndRange(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	early := testEvent("Spring Gala", time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC))
	late := testEvent("Harvest Dinner", time.Date(2026, 11, 20, 18, 0, 0, 0, time.UTC))
	late.Status = StatusConfirmed
	store.Create(ctx, early)
	store.Create(ctx, late)

	confirmed, err := store.List(ctx, ListFilter{Status: StatusConfirmed})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].Title != "Harvest Dinner" {
		t.Fatalf("confirmed filter returned %d events", len(confirmed))
	}

	fall, err := store.List(ctx, ListFilter{
		From: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(fall) != 1 || fall[0].Title != "Harvest Dinner" {
		t.Fatalf("date filter returned %d events", len(fall))
	}
}

func TestUpdateEvent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	e := testEvent("Corporate Mixer", time.Date(2026, 6, 5, 19, 0, 0, 0, time.UTC))
	store.Create(ctx, e)

	e.Status = StatusQuoted
	e.QuoteCents = 620000
	if err := store.Update(ctx, e); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := store.Get(ctx, e.ID)
	if got.Status != StatusQuoted {
		t.Errorf("got status %q, want %q", got.Status, StatusQuoted)
	}
	if got.QuoteCents != 620000 {
		t.Errorf("got quote_cents %d, want 620000", got.QuoteCents)
	}
}

func TestDeleteEvent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	e := testEvent("Cancelled Party", time.Now().UTC())
	store.Create(ctx, e)

	if err := store.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, e.ID); err == nil {
		t.Fatal("expected error after deleting event")
	}
}

func TestImageURLFallback(t *testing.T) {
	e := Event{CloudinaryID: "https://res.example.com/events/abc.jpg", LocalPath: "/img/abc.jpg"}
	if got := e.ImageURL(); got != "https://res.example.com/events/abc.jpg" {
		t.Errorf("got %q, want the media-library URL", got)
	}

	e.CloudinaryID = ""
	if got := e.ImageURL(); got != "/img/abc.jpg" {
		t.Errorf("got %q, want the local path", got)
	}
}

// --- HTTP handler tests ---

func setupTestRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestHTTPCreateEventRequiresTitle(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]any{"venue": "Somewhere"})
	req := httptest.NewRequest("POST", "/api/events", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHTTPGetEventComputedFields(t *testing.T) {
	r, store := setupTestRouter(t)

	e := testEvent("Tasting Night", time.Now().UTC())
	e.CloudinaryID = "https://res.example.com/tasting.jpg"
	store.Create(context.Background(), e)

	req := httptest.NewRequest("GET", "/api/events/"+e.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp map[string]any
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["quote"] != 4500.0 {
		t.Errorf("computed quote = %v, want 4500", resp["quote"])
	}
	if resp["image_url"] != "https://res.example.com/tasting.jpg" {
		t.Errorf("image_url = %v", resp["image_url"])
	}
}

func TestHTTPEventNotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/events/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
