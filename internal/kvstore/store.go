// Package kvstore provides the persistent key-value storage activities save
// their records into. Backends report errors; the Safe wrapper swallows them
// so storage trouble never reaches activity code.
package kvstore

import "errors"

// ErrNotFound is returned by a Backend when a key has no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Backend is a physical key-value store.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
	Close() error
}

// Store is the capability interface the rest of the arcade programs against.
// Absence is signalled, never an error: a failing backend looks like an
// empty one.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Keys() []string
}

// Safe adapts a Backend into a Store by swallowing every error.
type Safe struct {
	backend Backend
}

// NewSafe wraps a backend.
func NewSafe(backend Backend) *Safe {
	return &Safe{backend: backend}
}

// Get returns the value for key, or ("", false) on absence or any backend
// failure.
func (s *Safe) Get(key string) (string, bool) {
	value, err := s.backend.Get(key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set writes key. Failures are dropped silently.
func (s *Safe) Set(key, value string) {
	_ = s.backend.Set(key, value)
}

// Remove deletes key. Failures are dropped silently.
func (s *Safe) Remove(key string) {
	_ = s.backend.Remove(key)
}

// Keys lists every physical key, or nothing when the backend fails.
func (s *Safe) Keys() []string {
	keys, err := s.backend.Keys()
	if err != nil {
		return nil
	}
	return keys
}
