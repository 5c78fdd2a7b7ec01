package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/profile"
	"fractionsarcade/internal/progress"
)

// PlayerView is one profile as shown in the player switcher.
type PlayerView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Active bool   `json:"active"`
}

// StatsView is the Adventure HQ summary row.
type StatsView struct {
	Explored      int     `json:"explored"`
	TotalGames    int     `json:"totalGames"`
	CompletionPct int     `json:"completionPct"`
	TotalScore    float64 `json:"totalScore"`
	ScoredGames   int     `json:"scoredGames"`
	TotalLaunches int     `json:"totalLaunches"`
}

// ActivityView is one activity row with its record and score lines.
type ActivityView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Page       string `json:"page"`
	Icon       string `json:"icon"`
	Badge      string `json:"badge"`
	Tag        string `json:"tag"`
	Plays      int    `json:"plays"`
	Explored   bool   `json:"explored"`
	ScoreLine  string `json:"scoreLine"`
	RecordLine string `json:"recordLine"`
}

// SectionView groups activity rows for display.
type SectionView struct {
	Name       string         `json:"name"`
	Activities []ActivityView `json:"activities"`
}

// DashboardViewData is the full Adventure HQ payload.
type DashboardViewData struct {
	Player   *PlayerView   `json:"player"`
	Players  []PlayerView  `json:"players"`
	Avatars  []string      `json:"avatars"`
	Stats    StatsView     `json:"stats"`
	Sections []SectionView `json:"sections"`
}

// buildDashboard assembles the Adventure HQ view for the current state.
func buildDashboard(profiles *profile.Store, registry *catalog.Registry) DashboardViewData {
	active := profiles.ActiveProfile()

	data := DashboardViewData{
		Players:  make([]PlayerView, 0),
		Avatars:  profile.Avatars,
		Stats:    countStats(active, registry),
		Sections: buildSections(active, registry),
	}

	for _, p := range profiles.Profiles() {
		view := PlayerView{
			ID:     p.ID,
			Name:   p.Name,
			Avatar: p.Avatar,
			Active: active != nil && p.ID == active.ID,
		}
		data.Players = append(data.Players, view)
		if view.Active {
			data.Player = &view
		}
	}

	return data
}

// countStats computes the summary counters for a player, zero when none is
// active.
func countStats(p *profile.Profile, registry *catalog.Registry) StatsView {
	stats := StatsView{TotalGames: len(registry.Activities())}
	if p == nil {
		return stats
	}

	for _, a := range registry.Activities() {
		rec := p.Progress.Activities[a.ID]
		if rec == nil {
			continue
		}
		if rec.Plays > 0 {
			stats.Explored++
		}
		if rec.ScoreValue != nil {
			stats.TotalScore += *rec.ScoreValue
			stats.ScoredGames++
		}
	}

	if stats.TotalGames > 0 {
		stats.CompletionPct = int(math.Round(float64(stats.Explored) / float64(stats.TotalGames) * 100))
	}
	stats.TotalLaunches = p.Progress.TotalLaunches
	return stats
}

func buildSections(p *profile.Profile, registry *catalog.Registry) []SectionView {
	sections := make([]SectionView, 0, len(registry.Sections()))
	for _, section := range registry.Sections() {
		view := SectionView{Name: section.Name}
		for _, item := range section.Items {
			activity, _ := registry.ByID(item.ID)

			var rec *profile.ActivityRecord
			if p != nil {
				rec = p.Progress.Activities[activity.ID]
			}

			view.Activities = append(view.Activities, ActivityView{
				ID:         activity.ID,
				Title:      activity.Title,
				Page:       activity.Page,
				Icon:       activity.Icon,
				Badge:      activity.Badge,
				Tag:        activity.Tag,
				Plays:      recPlays(rec),
				Explored:   recPlays(rec) > 0,
				ScoreLine:  scoreLine(rec),
				RecordLine: recordLine(rec),
			})
		}
		sections = append(sections, view)
	}
	return sections
}

// recordLine renders an activity's best-record description.
func recordLine(rec *profile.ActivityRecord) string {
	if rec == nil {
		return "Not started"
	}
	if text := strings.TrimSpace(rec.RecordText); text != "" {
		return text
	}
	if rec.BestCorrect != nil && rec.BestTotal != nil {
		if rec.BestTimeMs != nil {
			return fmt.Sprintf("Best %s/%s in %s",
				formatNumber(*rec.BestCorrect), formatNumber(*rec.BestTotal),
				progress.FormatDuration(*rec.BestTimeMs))
		}
		return fmt.Sprintf("Best %s/%s", formatNumber(*rec.BestCorrect), formatNumber(*rec.BestTotal))
	}
	if rec.Plays == 1 {
		return "Played 1 time"
	}
	if rec.Plays > 1 {
		return fmt.Sprintf("Played %d times", rec.Plays)
	}
	return "Not started"
}

// scoreLine renders an activity's score badge.
func scoreLine(rec *profile.ActivityRecord) string {
	if rec == nil {
		return "—"
	}
	if label := strings.TrimSpace(rec.ScoreLabel); label != "" {
		return label
	}
	if rec.ScoreValue != nil {
		return formatNumber(*rec.ScoreValue)
	}
	return "—"
}

func recPlays(rec *profile.ActivityRecord) int {
	if rec == nil {
		return 0
	}
	return rec.Plays
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
