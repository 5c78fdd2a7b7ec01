package profile

import (
	"math"
	"sort"
	"time"
)

// Normalize repairs an arbitrary decoded document into a valid Collection.
// It is total and deterministic: any input yields a valid collection, and
// normalizing twice yields the same result as normalizing once.
//
// Profile ids are always recomputed from the sanitized name, never trusted
// from the document. Renaming a profile out-of-band therefore re-keys it on
// the next load, merging it into any existing profile with the same derived
// id (last-seen entry wins per field, in sorted key order).
func Normalize(raw any, now time.Time) *Collection {
	base, _ := raw.(map[string]any)

	out := NewCollection()
	stamp := nowISO(now)

	rawProfiles, _ := base["profiles"].(map[string]any)
	for _, rawID := range sortedKeys(rawProfiles) {
		entry, ok := rawProfiles[rawID].(map[string]any)
		if !ok {
			continue
		}

		name := stringField(entry, "name")
		if name == "" {
			name = rawID
		}
		cleanName := SanitizeName(name)
		id := DeriveID(cleanName)

		existing, ok := out.Profiles[id]
		if !ok {
			existing = NewProfile(cleanName, id, stamp)
		}

		existing.Name = cleanName
		if avatar := stringField(entry, "avatar"); ValidAvatar(avatar) {
			existing.Avatar = avatar
		}
		if createdAt := stringField(entry, "createdAt"); createdAt != "" {
			existing.CreatedAt = createdAt
		}
		if updatedAt := stringField(entry, "updatedAt"); updatedAt != "" {
			existing.UpdatedAt = updatedAt
		}

		existing.Progress = normalizeLedger(entry["progress"])
		out.Profiles[id] = existing
	}

	active := stringField(base, "activeProfileId")
	if _, ok := out.Profiles[active]; !ok {
		active = ""
		if ids := sortedKeys2(out.Profiles); len(ids) > 0 {
			active = ids[0]
		}
	}
	out.ActiveProfileID = active

	return out
}

func normalizeLedger(raw any) Ledger {
	entry, _ := raw.(map[string]any)

	ledger := Ledger{
		TotalLaunches:  clampCount(numberField(entry, "totalLaunches")),
		LastActivityID: stringField(entry, "lastActivityId"),
		Activities:     make(map[string]*ActivityRecord),
	}

	rawActivities, _ := entry["activities"].(map[string]any)
	for _, id := range sortedKeys(rawActivities) {
		rec, ok := rawActivities[id].(map[string]any)
		if !ok {
			continue
		}
		ledger.Activities[id] = normalizeRecord(rec)
	}

	return ledger
}

func normalizeRecord(entry map[string]any) *ActivityRecord {
	stars := clampCount(numberField(entry, "stars"))
	if stars > 3 {
		stars = 3
	}

	return &ActivityRecord{
		Plays:        clampCount(numberField(entry, "plays")),
		Stars:        stars,
		BestCorrect:  numberField(entry, "bestCorrect"),
		BestTotal:    numberField(entry, "bestTotal"),
		BestTimeMs:   numberField(entry, "bestTimeMs"),
		LastPlayedAt: stringField(entry, "lastPlayedAt"),
		RecordText:   stringField(entry, "recordText"),
		ScoreValue:   numberField(entry, "scoreValue"),
		ScoreLabel:   stringField(entry, "scoreLabel"),
	}
}

// stringField returns the field only when it is a string.
func stringField(entry map[string]any, field string) string {
	if entry == nil {
		return ""
	}
	s, _ := entry[field].(string)
	return s
}

// numberField returns the field only when it is a finite number.
func numberField(entry map[string]any, field string) *float64 {
	if entry == nil {
		return nil
	}
	n, ok := entry[field].(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// clampCount floors a nullable number to a non-negative integer.
func clampCount(n *float64) int {
	if n == nil {
		return 0
	}
	v := int(math.Floor(*n))
	if v < 0 {
		return 0
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string]*Profile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
