package profile

import (
	"strings"
	"testing"
	"time"

	"fractionsarcade/internal/kvstore"
)

func newTestStore() (*Store, kvstore.Store) {
	storage := kvstore.NewSafe(kvstore.NewMemory())
	s := NewStore(storage)

	// Deterministic, strictly advancing clock.
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return s, storage
}

func TestLoadInitializesFreshCollection(t *testing.T) {
	s, storage := newTestStore()

	c := s.Load()
	if c.Version != SchemaVersion || len(c.Profiles) != 0 {
		t.Errorf("fresh collection = %+v", c)
	}

	// The fresh document is persisted immediately.
	if _, ok := storage.Get(DocumentKey); !ok {
		t.Error("fresh collection not persisted")
	}
}

func TestLoadRecoversFromGarbage(t *testing.T) {
	storage := kvstore.NewSafe(kvstore.NewMemory())
	storage.Set(DocumentKey, "{not json")

	s := NewStore(storage)
	c := s.Load()
	if len(c.Profiles) != 0 || c.ActiveProfileID != "" {
		t.Errorf("collection after garbage = %+v", c)
	}

	// Self-healed: the persisted document is valid again.
	raw, ok := storage.Get(DocumentKey)
	if !ok || !strings.Contains(raw, `"version":1`) {
		t.Errorf("persisted document = %q", raw)
	}
}

func TestSwitchOrCreate(t *testing.T) {
	s, _ := newTestStore()

	p := s.SwitchOrCreate("  Ada   Lovelace! ")
	if p.ID != "ada-lovelace" {
		t.Errorf("ID = %q, want ada-lovelace", p.ID)
	}
	if p.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want Ada Lovelace", p.Name)
	}
	if !ValidAvatar(p.Avatar) {
		t.Errorf("Avatar = %q not in palette", p.Avatar)
	}
	if got := s.ActiveProfile(); got == nil || got.ID != p.ID {
		t.Error("created profile not active")
	}

	// Same derived id switches instead of creating; the display name is
	// refreshed.
	again := s.SwitchOrCreate("ada lovelace")
	if again.ID != p.ID {
		t.Errorf("second ID = %q, want %q", again.ID, p.ID)
	}
	if again.Name != "ada lovelace" {
		t.Errorf("Name after rename = %q, want ada lovelace", again.Name)
	}
	if len(s.Load().Profiles) != 1 {
		t.Errorf("len(Profiles) = %d, want 1", len(s.Load().Profiles))
	}
}

func TestSwitchTo(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreate("Ada")
	s.SwitchOrCreate("Max")

	if p := s.SwitchTo("ada"); p == nil || s.ActiveProfile().ID != "ada" {
		t.Error("SwitchTo(ada) did not activate ada")
	}
	if p := s.SwitchTo("nobody"); p != nil {
		t.Errorf("SwitchTo(nobody) = %v, want nil", p)
	}
	// The failed switch left the active profile untouched.
	if s.ActiveProfile().ID != "ada" {
		t.Errorf("active = %q after failed switch, want ada", s.ActiveProfile().ID)
	}
}

func TestSetAvatar(t *testing.T) {
	s, _ := newTestStore()

	if s.SetAvatar(Avatars[0]) {
		t.Error("SetAvatar with no active profile should fail")
	}

	s.SwitchOrCreate("Ada")
	if !s.SetAvatar(Avatars[3]) {
		t.Fatal("SetAvatar(palette) failed")
	}
	if s.ActiveProfile().Avatar != Avatars[3] {
		t.Errorf("Avatar = %q, want %q", s.ActiveProfile().Avatar, Avatars[3])
	}

	if s.SetAvatar("🚀") {
		t.Error("SetAvatar with unknown avatar should be a no-op")
	}
	if s.ActiveProfile().Avatar != Avatars[3] {
		t.Error("unknown avatar overwrote the stored one")
	}
}

func TestRecordLaunch(t *testing.T) {
	s, _ := newTestStore()

	if s.RecordLaunch("fractions_compare") {
		t.Error("RecordLaunch with no active profile should fail")
	}

	s.SwitchOrCreate("Ada")
	if s.RecordLaunch("") {
		t.Error("RecordLaunch with empty id should fail")
	}

	s.RecordLaunch("fractions_compare")
	s.RecordLaunch("fractions_compare")
	s.RecordLaunch("common_multiples")

	p := s.ActiveProfile()
	if p.Progress.TotalLaunches != 3 {
		t.Errorf("TotalLaunches = %d, want 3", p.Progress.TotalLaunches)
	}
	if p.Progress.LastActivityID != "common_multiples" {
		t.Errorf("LastActivityID = %q, want common_multiples", p.Progress.LastActivityID)
	}
	if got := p.Progress.Activities["fractions_compare"].Plays; got != 2 {
		t.Errorf("Plays = %d, want 2", got)
	}
	if p.Progress.Activities["common_multiples"].LastPlayedAt == "" {
		t.Error("LastPlayedAt not stamped")
	}
}

func TestDeletePurgesScopedEntries(t *testing.T) {
	s, storage := newTestStore()
	s.SwitchOrCreate("Ada")
	s.SwitchOrCreate("Max")

	storage.Set(ScopedKey("ada", "fractions_compare_best_v1"), `{"g":3,"timeMs":9000}`)
	storage.Set(ScopedKey("ada", "fractions_lab_state"), "x")
	storage.Set(ScopedKey("max", "fractions_compare_best_v1"), `{"g":1,"timeMs":5000}`)

	removed, ok := s.Delete("ada")
	if !ok {
		t.Fatal("Delete(ada) reported missing profile")
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	for _, k := range storage.Keys() {
		if strings.HasPrefix(k, ScopedKey("ada", "")) {
			t.Errorf("purged key still present: %q", k)
		}
	}
	if _, ok := storage.Get(ScopedKey("max", "fractions_compare_best_v1")); !ok {
		t.Error("other profile's entry was purged")
	}

	// Max was active; deleting a non-active profile never touches active.
	if got := s.ActiveProfile(); got == nil || got.ID != "max" {
		t.Errorf("active after delete = %v, want max", got)
	}
}

func TestDeleteActivePromotesSurvivor(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreate("Ada")
	s.SwitchOrCreate("Max")

	if _, ok := s.Delete("max"); !ok {
		t.Fatal("Delete(max) failed")
	}
	if got := s.ActiveProfile(); got == nil || got.ID != "ada" {
		t.Errorf("active = %v, want ada", got)
	}

	if _, ok := s.Delete("ada"); !ok {
		t.Fatal("Delete(ada) failed")
	}
	if s.ActiveProfile() != nil {
		t.Error("active should be empty after last profile deleted")
	}

	if _, ok := s.Delete("ada"); ok {
		t.Error("Delete of missing profile should report false")
	}
}

func TestMergeActiveActivityStamps(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreate("Ada")

	ok := s.MergeActiveActivity("fractions_compare", func(rec *ActivityRecord) {
		v := 3.0
		rec.ScoreValue = &v
	})
	if !ok {
		t.Fatal("MergeActiveActivity failed")
	}

	p := s.ActiveProfile()
	rec := p.Progress.Activities["fractions_compare"]
	if rec == nil || rec.ScoreValue == nil || *rec.ScoreValue != 3 {
		t.Fatalf("record = %+v", rec)
	}
	if rec.LastPlayedAt == "" {
		t.Error("LastPlayedAt not stamped")
	}
	if p.Progress.LastActivityID != "fractions_compare" {
		t.Errorf("LastActivityID = %q", p.Progress.LastActivityID)
	}
}

func TestClearActiveActivity(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreate("Ada")
	s.RecordLaunch("fractions_compare")
	s.MergeActiveActivity("fractions_compare", func(rec *ActivityRecord) {
		v := 3.0
		rec.ScoreValue = &v
		rec.RecordText = "3G 2R in 9.0s"
	})

	if !s.ClearActiveActivity("fractions_compare") {
		t.Fatal("ClearActiveActivity failed")
	}

	rec := s.ActiveProfile().Progress.Activities["fractions_compare"]
	if rec.Plays != 0 || rec.ScoreValue != nil || rec.RecordText != "" || rec.LastPlayedAt != "" {
		t.Errorf("record after clear = %+v, want zero state", rec)
	}
}

func TestResetActiveProgress(t *testing.T) {
	s, storage := newTestStore()
	s.SwitchOrCreate("Ada")
	s.RecordLaunch("fractions_compare")

	storage.Set(ScopedKey("ada", "fractions_compare_best_v1"), "x")
	storage.Set("fractions_legacy_thing", "y")
	storage.Set("unrelated", "z")

	removed := s.ResetActiveProgress(func(k string) bool {
		return strings.HasPrefix(k, "fractions_")
	})
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, ok := storage.Get("unrelated"); !ok {
		t.Error("unrelated key was removed")
	}
	if _, ok := storage.Get(DocumentKey); !ok {
		t.Error("profile document was removed")
	}

	p := s.ActiveProfile()
	if p.Progress.TotalLaunches != 0 || len(p.Progress.Activities) != 0 {
		t.Errorf("ledger after reset = %+v", p.Progress)
	}
}

func TestPersistenceAcrossStores(t *testing.T) {
	storage := kvstore.NewSafe(kvstore.NewMemory())

	first := NewStore(storage)
	first.SwitchOrCreate("Ada")
	first.RecordLaunch("fractions_compare")

	second := NewStore(storage)
	p := second.ActiveProfile()
	if p == nil || p.ID != "ada" {
		t.Fatalf("reloaded active = %v, want ada", p)
	}
	if p.Progress.TotalLaunches != 1 {
		t.Errorf("reloaded TotalLaunches = %d, want 1", p.Progress.TotalLaunches)
	}
}

func TestProfilesSortedByUpdatedAt(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreate("Ada")
	s.SwitchOrCreate("Max")
	s.SwitchOrCreate("Zoe")
	s.SwitchTo("ada")

	profiles := s.Profiles()
	if len(profiles) != 3 {
		t.Fatalf("len = %d, want 3", len(profiles))
	}
	if profiles[0].ID != "ada" {
		t.Errorf("most recent = %q, want ada", profiles[0].ID)
	}
}
