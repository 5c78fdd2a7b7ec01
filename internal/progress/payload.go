// Package progress interprets the best-score blobs activities write and
// merges them into a profile's activity records under a "never regress the
// recorded best" policy.
package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tags the two payload shapes activities produce.
type Kind int

const (
	// Graded payloads carry a correct count and an elapsed time.
	Graded Kind = iota + 1
	// Scalar payloads carry a single numeric score.
	Scalar
)

// Patch is one parsed result, ready to merge into an ActivityRecord.
type Patch struct {
	Kind       Kind
	ScoreValue float64
	ScoreLabel string
	RecordText string

	// Graded fields. Total is nil when the question count is unknown.
	Correct float64
	Partial float64
	Total   *float64
	TimeMs  float64
}

// ParsePayload decodes an activity's raw payload. It accepts a graded shape
// (correct count under "greens" or "g", optional partial count under
// "yellows" or "y", elapsed "timeMs") or a scalar shape ("score"); anything
// else yields no result. Counts are clamped so correct+partial never exceeds
// questionCount when it is known.
func ParsePayload(raw string, questionCount int) (Patch, bool) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Patch{}, false
	}

	correct, hasCorrect := firstNumber(decoded, "greens", "g")
	partial, hasPartial := firstNumber(decoded, "yellows", "y")
	score, hasScore := firstNumber(decoded, "score")
	timeMs, hasTime := firstNumber(decoded, "timeMs")

	if hasCorrect && hasTime {
		g := correct
		y := 0.0
		if hasPartial {
			y = partial
		}

		if questionCount > 0 {
			q := float64(questionCount)
			g = clamp(g, 0, q)
			y = clamp(y, 0, q-g)
			r := q - g - y

			text := fmt.Sprintf("%sG %sR in %s", formatNumber(g), formatNumber(r), FormatDuration(timeMs))
			if hasPartial {
				text = fmt.Sprintf("%sG %sY %sR in %s", formatNumber(g), formatNumber(y), formatNumber(r), FormatDuration(timeMs))
			}

			return Patch{
				Kind:       Graded,
				ScoreValue: g,
				ScoreLabel: fmt.Sprintf("%s/%d", formatNumber(g), questionCount),
				RecordText: text,
				Correct:    g,
				Partial:    y,
				Total:      &q,
				TimeMs:     timeMs,
			}, true
		}

		text := fmt.Sprintf("%sG in %s", formatNumber(g), FormatDuration(timeMs))
		if hasPartial {
			text = fmt.Sprintf("%sG %sY in %s", formatNumber(g), formatNumber(y), FormatDuration(timeMs))
		}

		return Patch{
			Kind:       Graded,
			ScoreValue: g,
			ScoreLabel: formatNumber(g),
			RecordText: text,
			Correct:    g,
			Partial:    y,
			TimeMs:     timeMs,
		}, true
	}

	if hasScore {
		return Patch{
			Kind:       Scalar,
			ScoreValue: score,
			ScoreLabel: formatNumber(score),
			RecordText: "Score " + formatNumber(score),
		}, true
	}

	return Patch{}, false
}

// FormatDuration renders milliseconds as "12.3s" under a minute and
// "2m 3.4s" above.
func FormatDuration(ms float64) string {
	totalSec := math.Max(0, ms) / 1000
	if totalSec < 60 {
		return fmt.Sprintf("%.1fs", totalSec)
	}
	mins := math.Floor(totalSec / 60)
	secs := totalSec - mins*60
	return fmt.Sprintf("%dm %.1fs", int(mins), secs)
}

// firstNumber returns the first listed field holding a finite number.
func firstNumber(decoded map[string]any, fields ...string) (float64, bool) {
	for _, field := range fields {
		if n, ok := decoded[field].(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return n, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(hi, math.Max(lo, v))
}

// formatNumber renders a number the way activities display it: no exponent,
// no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
