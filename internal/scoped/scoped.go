// Package scoped wraps the physical key-value store so that tracked keys are
// transparently namespaced to the active profile, and best-score writes feed
// the progress ledger as a side effect. Activities talk to this store
// exactly as they would to the plain one.
package scoped

import (
	"strings"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/kvstore"
	"fractionsarcade/internal/profile"
	"fractionsarcade/internal/progress"
)

// DefaultTrackedPrefixes are the key prefixes subject to profile scoping.
var DefaultTrackedPrefixes = []string{"fractions_", "common_multiples_"}

// Store is an explicit decorator over a kvstore.Store. Being a separate
// injected object rather than a patched global, it cannot be installed
// twice.
type Store struct {
	physical kvstore.Store
	profiles *profile.Store
	recon    *progress.Reconciler
	registry *catalog.Registry
	prefixes []string
	exact    map[string]bool
}

// New builds the interceptor with the default tracked prefixes.
func New(physical kvstore.Store, profiles *profile.Store, recon *progress.Reconciler, registry *catalog.Registry) *Store {
	return &Store{
		physical: physical,
		profiles: profiles,
		recon:    recon,
		registry: registry,
		prefixes: DefaultTrackedPrefixes,
		exact:    make(map[string]bool),
	}
}

// Track adds literal key names to the tracked set.
func (s *Store) Track(keys ...string) {
	for _, k := range keys {
		s.exact[k] = true
	}
}

// Tracked reports whether a key is subject to profile scoping. The profile
// document, global keys, and keys already carrying the scope marker never
// are.
func (s *Store) Tracked(key string) bool {
	if key == "" || key == profile.DocumentKey {
		return false
	}
	if strings.HasPrefix(key, profile.GlobalPrefix) {
		return false
	}
	if strings.HasPrefix(key, profile.ScopePrefix) {
		return false
	}
	if s.exact[key] {
		return true
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// Legacy reports whether an unscoped physical key holds pre-profile data:
// a registered best-score key or any tracked-prefix key.
func (s *Store) Legacy(key string) bool {
	if _, ok := s.registry.ByStorageKey(key); ok {
		return true
	}
	return s.Tracked(key)
}

// rewrite maps a tracked key into the active profile's namespace. Untracked
// keys, and every key when no profile is active, pass through unchanged.
func (s *Store) rewrite(key string) string {
	if !s.Tracked(key) {
		return key
	}
	active := s.profiles.ActiveProfile()
	if active == nil || active.ID == "" {
		return key
	}
	return profile.ScopedKey(active.ID, key)
}

// Get reads a key through the profile scope.
func (s *Store) Get(key string) (string, bool) {
	return s.physical.Get(s.rewrite(key))
}

// Set writes a key through the profile scope. When the key is a registered
// best-score key, the value is also parsed and merged into the active
// profile's progress.
func (s *Store) Set(key, value string) {
	s.physical.Set(s.rewrite(key), value)

	if activity, ok := s.registry.ByStorageKey(key); ok {
		s.recon.Record(activity.ID, value, activity.QuestionCount)
	}
}

// Remove deletes a key through the profile scope. Removing a registered
// best-score key clears the activity's record.
func (s *Store) Remove(key string) {
	s.physical.Remove(s.rewrite(key))

	if activity, ok := s.registry.ByStorageKey(key); ok {
		s.recon.Clear(activity.ID)
	}
}

// Keys lists the physical keys unmodified.
func (s *Store) Keys() []string {
	return s.physical.Keys()
}
