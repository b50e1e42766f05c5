package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/touch"
)

// newTestStore creates a store backed by a temporary database file.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "mudra_test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordingCRUD(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{ID: uuid.NewString(), Name: "swipe-right"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "swipe-right" {
		t.Errorf("name = %q, want swipe-right", got.Name)
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list length = %d, want 1", len(list))
	}

	if err := repo.Delete(rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestRecordingSamplesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{ID: uuid.NewString(), Name: "tap"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	samples := []touch.Sample{
		touch.NewSample(100, 100, 0, touch.PhaseStart),
		touch.NewSample(101, 100, 0.05, touch.PhaseMove),
		touch.NewSample(100, 100, 0.1, touch.PhaseEnd),
	}
	samples[1].Pressure = 0.7
	samples[1].Kind = touch.PointerStylus
	samples[1].Contact = 1

	if err := repo.AddSamples(rec.ID, samples); err != nil {
		t.Fatalf("add samples: %v", err)
	}

	got, err := repo.GetSamples(rec.ID)
	if err != nil {
		t.Fatalf("get samples: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("sample count = %d, want 3", len(got))
	}
	if got[0] != samples[0] || got[1] != samples[1] || got[2] != samples[2] {
		t.Errorf("samples did not round-trip: got %+v", got)
	}

	// The sample count on the recording row is updated.
	updated, err := repo.GetByID(rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Samples != 3 {
		t.Errorf("recording sample count = %d, want 3", updated.Samples)
	}
}

func TestRecordingDeleteCascadesSamples(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{ID: uuid.NewString(), Name: "drag"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.AddSamples(rec.ID, []touch.Sample{touch.NewSample(0, 0, 0, touch.PhaseStart)}); err != nil {
		t.Fatalf("add samples: %v", err)
	}
	if err := repo.Delete(rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	samples, err := repo.GetSamples(rec.ID)
	if err != nil {
		t.Fatalf("get samples: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("samples survived recording deletion: %d rows", len(samples))
	}
}

func TestEventLog(t *testing.T) {
	s := newTestStore(t)
	repo := s.Events()

	e := &Event{
		ID:     uuid.NewString(),
		Kind:   "swipe",
		State:  "recognized",
		Detail: json.RawMessage(`{"direction":"right"}`),
	}
	if err := repo.Create(e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(&Event{ID: uuid.NewString(), Kind: "tap", State: "failed", Reason: "timeout"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	events, err := repo.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}

	events, err = repo.List(1)
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("limited event count = %d, want 1", len(events))
	}
}

func TestEventPrune(t *testing.T) {
	s := newTestStore(t)
	repo := s.Events()

	if err := repo.Create(&Event{ID: uuid.NewString(), Kind: "tap", State: "recognized"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Nothing is older than an hour ago.
	n, err := repo.Prune(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 0 {
		t.Errorf("pruned %d events, want 0", n)
	}

	// Everything is older than an hour from now.
	n, err = repo.Prune(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d events, want 1", n)
	}
}
