package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"fractionsarcade/internal/security"
)

// GateHandler issues parental gate challenges and exchanges correct answers
// for gate tokens.
type GateHandler struct {
	gate    *security.Gate
	limiter *security.RateLimiter
}

// NewGateHandler creates a new gate handler
func NewGateHandler(gate *security.Gate, limiter *security.RateLimiter) *GateHandler {
	return &GateHandler{
		gate:    gate,
		limiter: limiter,
	}
}

// Challenge issues a fresh sum question. GET /api/gate/challenge
func (h *GateHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.gate.NewChallenge())
}

// Unlock exchanges a solved challenge, or the parent PIN, for a gate token.
// POST /api/gate/unlock
func (h *GateHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(security.GetClientIP(r)) {
		respondWithError(w, http.StatusTooManyRequests, "Too many attempts, try again later", "", nil)
		return
	}

	var req struct {
		ID        string `json:"id"`
		Proof     string `json:"proof"`
		ExpiresAt int64  `json:"expiresAt"`
		Answer    *int   `json:"answer"`
		PIN       string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	passed := false
	switch {
	case req.PIN != "":
		passed = h.gate.CheckPIN(req.PIN)
	case req.Answer != nil:
		passed = h.gate.CheckAnswer(req.ID, req.Proof, req.ExpiresAt, *req.Answer)
	}
	if !passed {
		respondWithError(w, http.StatusForbidden, "Wrong answer", "", nil)
		return
	}

	token, err := h.gate.Token()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error minting gate token", err)
		return
	}

	http.SetCookie(w, security.CreateGateCookie(r, token, time.Now().Add(10*time.Minute)))
	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}
