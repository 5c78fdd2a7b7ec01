package progress

import (
	"strings"

	"fractionsarcade/internal/profile"
)

// Reconciler folds parsed payloads into the active profile's records.
type Reconciler struct {
	profiles *profile.Store
}

// NewReconciler creates a reconciler over a profile store.
func NewReconciler(profiles *profile.Store) *Reconciler {
	return &Reconciler{profiles: profiles}
}

// Record parses a raw payload for an activity and merges it into the active
// profile. Returns false when the payload yields no result or there is no
// active profile; the prior record is untouched in either case.
func (r *Reconciler) Record(activityID, raw string, questionCount int) bool {
	patch, ok := ParsePayload(raw, questionCount)
	if !ok {
		return false
	}
	return r.profiles.MergeActiveActivity(activityID, func(rec *profile.ActivityRecord) {
		Apply(rec, patch)
	})
}

// Clear resets the active profile's record for an activity to its zero
// state. Removal of a best-score key means "clear my record".
func (r *Reconciler) Clear(activityID string) bool {
	return r.profiles.ClearActiveActivity(activityID)
}

// Apply merges a patch into a record. The field groups move independently:
// the scalar score replaces only on a strictly greater value, the graded
// best on a lexicographically better (correct desc, time asc) result, and a
// non-blank recordText always overwrites as the fresh authoritative summary.
func Apply(rec *profile.ActivityRecord, patch Patch) {
	if text := strings.TrimSpace(patch.RecordText); text != "" {
		rec.RecordText = text
	}

	if rec.ScoreValue == nil || patch.ScoreValue > *rec.ScoreValue {
		value := patch.ScoreValue
		rec.ScoreValue = &value

		label := strings.TrimSpace(patch.ScoreLabel)
		if label == "" {
			label = formatNumber(value)
		}
		rec.ScoreLabel = label
	}

	if patch.Kind != Graded {
		return
	}

	betterByScore := rec.BestCorrect == nil || patch.Correct > *rec.BestCorrect
	tiedScore := rec.BestCorrect != nil && patch.Correct == *rec.BestCorrect
	betterByTime := rec.BestTimeMs == nil || patch.TimeMs < *rec.BestTimeMs

	if betterByScore || (tiedScore && betterByTime) {
		correct := patch.Correct
		timeMs := patch.TimeMs
		rec.BestCorrect = &correct
		rec.BestTimeMs = &timeMs
		if patch.Total != nil {
			total := *patch.Total
			rec.BestTotal = &total
		}
	}
}
