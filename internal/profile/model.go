// Package profile implements the player profile collection: the data model,
// normalization of persisted documents, and the store that owns the single
// in-memory copy for the lifetime of the process.
package profile

import (
	"regexp"
	"strings"
	"time"
)

const (
	// DocumentKey is the physical key the profile collection is persisted under.
	DocumentKey = "fractionsArcade_global_profiles_v1"

	// ScopePrefix namespaces tracked keys per profile.
	ScopePrefix = "fractionsArcade_scope_v1_"

	// GlobalPrefix marks keys shared across profiles; they are never scoped.
	GlobalPrefix = "fractionsArcade_global_"

	// DefaultName is used when a player name sanitizes to nothing.
	DefaultName = "Player"

	// MaxNameLength caps sanitized player names.
	MaxNameLength = 16

	// SchemaVersion is the persisted document schema version.
	SchemaVersion = 1
)

// Avatars is the fixed avatar palette.
var Avatars = []string{"🦊", "🐼", "🦁", "🐯", "🐨", "🐸", "🐬", "🦄", "🐆", "🐧"}

// Collection is the single persisted profile document.
type Collection struct {
	Version         int                 `json:"version"`
	ActiveProfileID string              `json:"activeProfileId"`
	Profiles        map[string]*Profile `json:"profiles"`
}

// Profile is one player's identity plus progress.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Progress  Ledger `json:"progress"`
}

// Ledger tracks a player's activity history.
type Ledger struct {
	TotalLaunches  int                        `json:"totalLaunches"`
	LastActivityID string                     `json:"lastActivityId"`
	Activities     map[string]*ActivityRecord `json:"activities"`
}

// ActivityRecord is the per-profile, per-activity best-score state. The
// nullable numbers stay pointers so "never played" survives round-trips.
type ActivityRecord struct {
	Plays        int      `json:"plays"`
	Stars        int      `json:"stars"`
	BestCorrect  *float64 `json:"bestCorrect"`
	BestTotal    *float64 `json:"bestTotal"`
	BestTimeMs   *float64 `json:"bestTimeMs"`
	LastPlayedAt string   `json:"lastPlayedAt"`
	RecordText   string   `json:"recordText"`
	ScoreValue   *float64 `json:"scoreValue"`
	ScoreLabel   string   `json:"scoreLabel"`
}

var (
	nameJunkPattern = regexp.MustCompile(`[^A-Za-z0-9 ]+`)
	spaceRunPattern = regexp.MustCompile(`\s+`)
	idJunkPattern   = regexp.MustCompile(`[^a-z0-9]+`)
)

// SanitizeName reduces a raw player name to letters, digits and single
// spaces, capped at MaxNameLength. An empty result falls back to DefaultName.
func SanitizeName(raw string) string {
	name := nameJunkPattern.ReplaceAllString(raw, " ")
	name = spaceRunPattern.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return DefaultName
	}
	if len(name) > MaxNameLength {
		// Only ASCII remains at this point, so byte slicing is safe. Trim
		// again in case the cut lands on a space.
		name = strings.TrimSpace(name[:MaxNameLength])
	}
	return name
}

// DeriveID computes the profile id for a name. Two names sanitizing to the
// same string always derive the same id; an empty derivation falls back to
// "player-1".
func DeriveID(name string) string {
	id := strings.ToLower(SanitizeName(name))
	id = idJunkPattern.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "player-1"
	}
	return id
}

// AvatarForID picks a palette avatar deterministically from an id.
func AvatarForID(id string) string {
	var hash int32
	for _, c := range id {
		hash = (hash << 5) - hash + int32(c)
	}
	idx := int(hash)
	if idx < 0 {
		idx = -idx
	}
	return Avatars[idx%len(Avatars)]
}

// ValidAvatar reports whether avatar belongs to the palette.
func ValidAvatar(avatar string) bool {
	for _, a := range Avatars {
		if a == avatar {
			return true
		}
	}
	return false
}

// ScopedKey returns the physical key for a tracked key under a profile.
func ScopedKey(profileID, key string) string {
	return ScopePrefix + profileID + "::" + key
}

// NewCollection returns an empty, valid collection.
func NewCollection() *Collection {
	return &Collection{
		Version:  SchemaVersion,
		Profiles: make(map[string]*Profile),
	}
}

// NewProfile creates a fresh profile for a name and id.
func NewProfile(name, id, stamp string) *Profile {
	return &Profile{
		ID:        id,
		Name:      SanitizeName(name),
		Avatar:    AvatarForID(id),
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Progress: Ledger{
			Activities: make(map[string]*ActivityRecord),
		},
	}
}

// Activity returns the record for an activity id, creating it when missing.
func (p *Profile) Activity(activityID string) *ActivityRecord {
	if p.Progress.Activities == nil {
		p.Progress.Activities = make(map[string]*ActivityRecord)
	}
	rec, ok := p.Progress.Activities[activityID]
	if !ok {
		rec = &ActivityRecord{}
		p.Progress.Activities[activityID] = rec
	}
	return rec
}

func nowISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
