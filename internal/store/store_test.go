package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSettings_GetSet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.Get(SettingPeaceText); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := settings.Set(SettingPeaceText, "hello"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := settings.Get(SettingPeaceText)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "hello" {
		t.Errorf("value = %q, want %q", value, "hello")
	}

	// Upsert replaces the value.
	if err := settings.Set(SettingPeaceText, "world"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	if value, _ := settings.Get(SettingPeaceText); value != "world" {
		t.Errorf("value = %q after upsert, want %q", value, "world")
	}
}

func TestSettings_GetInt(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if n := settings.GetInt(SettingParticleCount, 15000); n != 15000 {
		t.Errorf("missing key: got %d, want default", n)
	}

	if err := settings.SetInt(SettingParticleCount, 6000); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if n := settings.GetInt(SettingParticleCount, 15000); n != 6000 {
		t.Errorf("GetInt = %d, want 6000", n)
	}

	settings.Set(SettingParticleCount, "not-a-number")
	if n := settings.GetInt(SettingParticleCount, 15000); n != 15000 {
		t.Errorf("non-numeric value should fall back to default, got %d", n)
	}
}

func TestSettings_All(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	settings.Set("a", "1")
	settings.Set("b", "2")

	all, err := settings.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 || all["a"] != "1" || all["b"] != "2" {
		t.Errorf("All = %v, want {a:1 b:2}", all)
	}
}

func TestEvents_InsertAndList(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	base := time.Now().Add(-time.Minute)
	for i, to := range []string{"fist", "open", "metal"} {
		err := events.Insert(&Event{
			ID:          uuid.New().String(),
			FromGesture: "none",
			ToGesture:   to,
			Source:      SourceLive,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	recent, err := events.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(recent))
	}
	if recent[0].ToGesture != "metal" {
		t.Errorf("newest event = %q, want metal", recent[0].ToGesture)
	}
}

func TestEvents_RejectsUnknownSource(t *testing.T) {
	s := newTestStore(t)

	err := s.Events().Insert(&Event{
		ID:          uuid.New().String(),
		FromGesture: "none",
		ToGesture:   "fist",
		Source:      EventSource("guessed"),
	})
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown event source")
	}
}

func TestEvents_Prune(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	old := time.Now().Add(-48 * time.Hour)
	events.Insert(&Event{ID: uuid.New().String(), FromGesture: "none", ToGesture: "fist", Source: SourceLive, CreatedAt: old})
	events.Insert(&Event{ID: uuid.New().String(), FromGesture: "fist", ToGesture: "open", Source: SourceLive})

	removed, err := events.Prune(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("pruned %d events, want 1", removed)
	}

	remaining, _ := events.ListRecent(10)
	if len(remaining) != 1 {
		t.Errorf("%d events remain, want 1", len(remaining))
	}
}

func TestActions_CRUD(t *testing.T) {
	s := newTestStore(t)
	actions := s.Actions()

	a := &Action{
		ID:         uuid.New().String(),
		Gesture:    "metal",
		PluginName: "notify",
		ActionName: "send",
		Enabled:    true,
	}
	if err := actions.Create(a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := actions.GetByID(a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Gesture != "metal" || got.PluginName != "notify" || !got.Enabled {
		t.Errorf("unexpected action: %+v", got)
	}
	if got.Config != "{}" {
		t.Errorf("empty config should default to {}, got %q", got.Config)
	}

	disabled := &Action{
		ID:         uuid.New().String(),
		Gesture:    "metal",
		PluginName: "notify",
		ActionName: "flash",
		Enabled:    false,
	}
	if err := actions.Create(disabled); err != nil {
		t.Fatalf("Create disabled failed: %v", err)
	}

	// Only the enabled binding is returned for dispatch.
	byGesture, err := actions.ListByGesture("metal")
	if err != nil {
		t.Fatalf("ListByGesture failed: %v", err)
	}
	if len(byGesture) != 1 || byGesture[0].ID != a.ID {
		t.Errorf("ListByGesture returned %d bindings, want the single enabled one", len(byGesture))
	}

	all, _ := actions.List()
	if len(all) != 2 {
		t.Errorf("List returned %d bindings, want 2", len(all))
	}

	if err := actions.Delete(a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := actions.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete should return ErrNotFound, got %v", err)
	}
	if _, err := actions.GetByID(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete should return ErrNotFound, got %v", err)
	}
}
