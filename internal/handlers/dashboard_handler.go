package handlers

import (
	"net/http"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/profile"
)

// DashboardHandler serves the Adventure HQ view.
type DashboardHandler struct {
	profiles *profile.Store
	registry *catalog.Registry
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(profiles *profile.Store, registry *catalog.Registry) *DashboardHandler {
	return &DashboardHandler{
		profiles: profiles,
		registry: registry,
	}
}

// Dashboard returns the full Adventure HQ payload. GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, buildDashboard(h.profiles, h.registry))
}
