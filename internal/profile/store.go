package profile

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"fractionsarcade/internal/kvstore"
)

// Store owns the one in-memory copy of the profile collection and flushes it
// back to physical storage after every mutation. Callers never see storage
// errors: operations on a failing store are silent no-ops and reads report
// absence.
type Store struct {
	storage kvstore.Store
	cached  *Collection

	// Now is the clock used for timestamps; tests may replace it.
	Now func() time.Time
}

// NewStore creates a store over physical storage. Call Load before use, or
// let the first operation load lazily.
func NewStore(storage kvstore.Store) *Store {
	return &Store{
		storage: storage,
		Now:     time.Now,
	}
}

// Load reads the persisted document, normalizes it, and persists the
// normalized result so every load self-heals. A missing or unparsable
// document initializes a fresh empty collection.
func (s *Store) Load() *Collection {
	if s.cached != nil {
		return s.cached
	}

	raw, ok := s.storage.Get(DocumentKey)
	if !ok {
		s.cached = NewCollection()
		s.Flush()
		return s.cached
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.cached = NewCollection()
	} else {
		s.cached = Normalize(decoded, s.Now())
	}

	s.Flush()
	return s.cached
}

// Flush persists the in-memory collection.
func (s *Store) Flush() {
	if s.cached == nil {
		return
	}
	data, err := json.Marshal(s.cached)
	if err != nil {
		return
	}
	s.storage.Set(DocumentKey, string(data))
}

// ActiveProfile returns the active profile, or nil when none is selected.
func (s *Store) ActiveProfile() *Profile {
	c := s.Load()
	if c.ActiveProfileID == "" {
		return nil
	}
	return c.Profiles[c.ActiveProfileID]
}

// Profiles returns every profile, most recently updated first.
func (s *Store) Profiles() []*Profile {
	c := s.Load()

	profiles := make([]*Profile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].UpdatedAt != profiles[j].UpdatedAt {
			return profiles[i].UpdatedAt > profiles[j].UpdatedAt
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles
}

// SwitchOrCreate sanitizes the name, derives its id, creates the profile if
// it is new or renames the existing one, and makes it active. Renaming to a
// name whose id already exists merges into that profile.
func (s *Store) SwitchOrCreate(rawName string) *Profile {
	c := s.Load()

	name := SanitizeName(rawName)
	id := DeriveID(name)

	p, ok := c.Profiles[id]
	if !ok {
		p = NewProfile(name, id, nowISO(s.Now()))
		c.Profiles[id] = p
	} else {
		p.Name = name
	}

	c.ActiveProfileID = id
	s.touch(p)
	s.Flush()
	return p
}

// SwitchTo makes an existing profile active. Unknown ids are a no-op
// returning nil.
func (s *Store) SwitchTo(id string) *Profile {
	c := s.Load()

	p, ok := c.Profiles[id]
	if !ok {
		return nil
	}

	c.ActiveProfileID = id
	s.touch(p)
	s.Flush()
	return p
}

// SetAvatar sets the active profile's avatar. Unknown avatars and a missing
// active profile are no-ops.
func (s *Store) SetAvatar(avatar string) bool {
	if !ValidAvatar(avatar) {
		return false
	}
	p := s.ActiveProfile()
	if p == nil {
		return false
	}

	p.Avatar = avatar
	s.touch(p)
	s.Flush()
	return true
}

// Delete removes a profile, purges all of its scoped physical entries, and
// promotes another profile to active when the deleted one was active. It
// reports the number of purged physical entries and whether the profile
// existed.
func (s *Store) Delete(id string) (int, bool) {
	c := s.Load()

	if _, ok := c.Profiles[id]; !ok {
		return 0, false
	}

	delete(c.Profiles, id)
	removed := s.purgeScoped(id)

	if c.ActiveProfileID == id {
		c.ActiveProfileID = ""
		if ids := sortedKeys2(c.Profiles); len(ids) > 0 {
			c.ActiveProfileID = ids[0]
		}
	}

	s.Flush()
	return removed, true
}

// RecordLaunch counts a launch of an activity against the active profile.
// No-op without an active profile or with an empty activity id.
func (s *Store) RecordLaunch(activityID string) bool {
	if activityID == "" {
		return false
	}
	p := s.ActiveProfile()
	if p == nil {
		return false
	}

	rec := p.Activity(activityID)
	rec.Plays++
	rec.LastPlayedAt = nowISO(s.Now())

	p.Progress.TotalLaunches++
	p.Progress.LastActivityID = activityID

	s.touch(p)
	s.Flush()
	return true
}

// MergeActiveActivity runs mutate against the active profile's record for an
// activity, then stamps lastPlayedAt and the ledger's lastActivityId
// regardless of whether mutate improved anything.
func (s *Store) MergeActiveActivity(activityID string, mutate func(*ActivityRecord)) bool {
	if activityID == "" {
		return false
	}
	p := s.ActiveProfile()
	if p == nil {
		return false
	}

	rec := p.Activity(activityID)
	mutate(rec)

	rec.LastPlayedAt = nowISO(s.Now())
	p.Progress.LastActivityID = activityID

	s.touch(p)
	s.Flush()
	return true
}

// ClearActiveActivity resets the active profile's record for an activity to
// its zero state, plays and lastPlayedAt included.
func (s *Store) ClearActiveActivity(activityID string) bool {
	if activityID == "" {
		return false
	}
	p := s.ActiveProfile()
	if p == nil {
		return false
	}

	*p.Activity(activityID) = ActivityRecord{}

	s.touch(p)
	s.Flush()
	return true
}

// ResetActiveProgress removes every physical entry belonging to the active
// profile (its scoped keys plus any unscoped legacy key matched by isLegacy)
// and zeroes the profile's ledger. Returns the number of removed physical
// entries.
func (s *Store) ResetActiveProgress(isLegacy func(string) bool) int {
	p := s.ActiveProfile()
	if p == nil {
		return 0
	}

	prefix := ScopedKey(p.ID, "")
	removed := 0
	for _, k := range s.storage.Keys() {
		if k == DocumentKey || strings.HasPrefix(k, GlobalPrefix) {
			continue
		}
		if strings.HasPrefix(k, prefix) || (isLegacy != nil && isLegacy(k)) {
			s.storage.Remove(k)
			removed++
		}
	}

	p.Progress = Ledger{Activities: make(map[string]*ActivityRecord)}
	s.touch(p)
	s.Flush()
	return removed
}

// purgeScoped removes every physical key carrying a profile's scope prefix.
func (s *Store) purgeScoped(profileID string) int {
	prefix := ScopedKey(profileID, "")

	removed := 0
	for _, k := range s.storage.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.storage.Remove(k)
			removed++
		}
	}
	return removed
}

func (s *Store) touch(p *Profile) {
	p.UpdatedAt = nowISO(s.Now())
}
