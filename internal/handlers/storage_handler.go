package handlers

import (
	"io"
	"net/http"

	"fractionsarcade/internal/scoped"
)

// maxValueSize caps a stored value at 256KB.
const maxValueSize = 256 * 1024

// StorageHandler exposes the scoped key-value store to activity pages.
type StorageHandler struct {
	store *scoped.Store
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(store *scoped.Store) *StorageHandler {
	return &StorageHandler{store: store}
}

type storageEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Get reads one key. GET /api/storage/{key}
func (h *StorageHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Missing key", "", nil)
		return
	}

	value, ok := h.store.Get(key)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Key not found", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, storageEntry{Key: key, Value: value})
}

// Put writes one key; the request body is the raw value.
// PUT /api/storage/{key}
func (h *StorageHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Missing key", "", nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxValueSize+1))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unreadable body", "Error reading storage value", err)
		return
	}
	if len(body) > maxValueSize {
		respondWithError(w, http.StatusRequestEntityTooLarge, "Value too large", "", nil)
		return
	}

	h.store.Set(key, string(body))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes one key. DELETE /api/storage/{key}
func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Missing key", "", nil)
		return
	}

	h.store.Remove(key)
	w.WriteHeader(http.StatusNoContent)
}
