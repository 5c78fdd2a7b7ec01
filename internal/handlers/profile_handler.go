package handlers

import (
	"encoding/json"
	"net/http"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/profile"
	"fractionsarcade/internal/scoped"
)

// ProfileHandler handles player profile HTTP requests.
type ProfileHandler struct {
	profiles *profile.Store
	store    *scoped.Store
	registry *catalog.Registry
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *profile.Store, store *scoped.Store, registry *catalog.Registry) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		store:    store,
		registry: registry,
	}
}

type profileView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func toProfileView(p *profile.Profile) profileView {
	return profileView{ID: p.ID, Name: p.Name, Avatar: p.Avatar}
}

// List returns every profile plus the active id. GET /api/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	views := make([]profileView, 0)
	for _, p := range h.profiles.Profiles() {
		views = append(views, toProfileView(p))
	}

	activeID := ""
	if active := h.profiles.ActiveProfile(); active != nil {
		activeID = active.ID
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"profiles":        views,
		"activeProfileId": activeID,
	})
}

// Active returns the active profile. GET /api/profiles/active
func (h *ProfileHandler) Active(w http.ResponseWriter, r *http.Request) {
	active := h.profiles.ActiveProfile()
	if active == nil {
		respondWithError(w, http.StatusNotFound, "No active profile", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, toProfileView(active))
}

// SuggestName proposes a fresh player name for the create dialog.
// GET /api/profiles/suggest-name
func (h *ProfileHandler) SuggestName(w http.ResponseWriter, r *http.Request) {
	name, err := profile.SuggestName()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error suggesting name", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"name": name})
}

// Create creates or switches to a profile by name. POST /api/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	p := h.profiles.SwitchOrCreate(req.Name)
	respondWithJSON(w, http.StatusOK, toProfileView(p))
}

// Switch activates an existing profile. POST /api/profiles/{id}/switch
func (h *ProfileHandler) Switch(w http.ResponseWriter, r *http.Request) {
	p := h.profiles.SwitchTo(r.PathValue("id"))
	if p == nil {
		respondWithError(w, http.StatusNotFound, "Profile not found", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, toProfileView(p))
}

// SetAvatar changes the active profile's avatar. POST /api/profiles/avatar
func (h *ProfileHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if !h.profiles.SetAvatar(req.Avatar) {
		respondWithError(w, http.StatusBadRequest, "Avatar not accepted", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, toProfileView(h.profiles.ActiveProfile()))
}

// RecordLaunch notes that the active profile opened an activity.
// POST /api/activities/{id}/launch
func (h *ProfileHandler) RecordLaunch(w http.ResponseWriter, r *http.Request) {
	activityID := r.PathValue("id")
	if _, ok := h.registry.ByID(activityID); !ok {
		respondWithError(w, http.StatusNotFound, "Unknown activity", "", nil)
		return
	}

	if !h.profiles.RecordLaunch(activityID) {
		respondWithError(w, http.StatusConflict, "No active profile", "", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a profile and its scoped entries. Gated.
// DELETE /api/profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, ok := h.profiles.Delete(r.PathValue("id"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "Profile not found", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"removedEntries": removed})
}

// ResetProgress wipes the active profile's progress and stored activity
// state. Gated. POST /api/progress/reset
func (h *ProfileHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if h.profiles.ActiveProfile() == nil {
		respondWithError(w, http.StatusConflict, "No active profile", "", nil)
		return
	}

	removed := h.profiles.ResetActiveProgress(h.store.Legacy)
	respondWithJSON(w, http.StatusOK, map[string]int{"removedEntries": removed})
}
