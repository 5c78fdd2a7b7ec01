package handlers

import (
	"net/http"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/manifest"
)

// ManifestHandler serves the offline precache manifest.
type ManifestHandler struct {
	version  string
	registry *catalog.Registry
}

// NewManifestHandler creates a new manifest handler
func NewManifestHandler(version string, registry *catalog.Registry) *ManifestHandler {
	return &ManifestHandler{
		version:  version,
		registry: registry,
	}
}

// Manifest returns the precache manifest. GET /api/cache-manifest
func (h *ManifestHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, manifest.Build(h.version, h.registry))
}
