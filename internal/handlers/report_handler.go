package handlers

import (
	"net/http"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/profile"
	"fractionsarcade/internal/report"
)

// ReportHandler sends progress report emails for the active player.
type ReportHandler struct {
	profiles *profile.Store
	registry *catalog.Registry
	mailer   *report.Mailer
}

// NewReportHandler creates a new report handler
func NewReportHandler(profiles *profile.Store, registry *catalog.Registry, mailer *report.Mailer) *ReportHandler {
	return &ReportHandler{
		profiles: profiles,
		registry: registry,
		mailer:   mailer,
	}
}

// Send emails the active player's summary. Gated. POST /api/report/send
func (h *ReportHandler) Send(w http.ResponseWriter, r *http.Request) {
	active := h.profiles.ActiveProfile()
	if active == nil {
		respondWithError(w, http.StatusConflict, "No active profile", "", nil)
		return
	}
	if !h.mailer.IsEnabled() {
		respondWithError(w, http.StatusServiceUnavailable, "Report mailer not configured", "", nil)
		return
	}

	summary := buildSummary(active, h.registry)
	if err := h.mailer.SendProgressReport(r.Context(), summary); err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to send report", "Error sending progress report", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// buildSummary converts the dashboard view into the mail digest.
func buildSummary(active *profile.Profile, registry *catalog.Registry) report.Summary {
	stats := countStats(active, registry)

	summary := report.Summary{
		PlayerName:      active.Name,
		Avatar:          active.Avatar,
		TotalLaunches:   stats.TotalLaunches,
		Explored:        stats.Explored,
		TotalActivities: stats.TotalGames,
	}

	for _, a := range registry.Activities() {
		rec := active.Progress.Activities[a.ID]
		if rec == nil || rec.Plays == 0 {
			continue
		}
		summary.Lines = append(summary.Lines, report.ActivityLine{
			Title:  a.Title,
			Record: recordLine(rec),
			Score:  scoreLine(rec),
		})
	}

	return summary
}
