package handlers

import (
	"log"
	"net/http"
	"time"

	"fractionsarcade/internal/security"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	gate *security.Gate
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(gate *security.Gate) *Middleware {
	return &Middleware{gate: gate}
}

// RequireGate is middleware that requires a valid parental gate token,
// carried either in the gate cookie or the X-Gate-Token header.
func (m *Middleware) RequireGate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Gate-Token")
		if token == "" {
			if cookie, err := r.Cookie(security.GateCookieName); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "Parental gate required", "", nil)
			return
		}

		if err := m.gate.Verify(token); err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, security.GateCookieName))
			respondWithError(w, http.StatusUnauthorized, "Parental gate required", "Invalid gate token", err)
			return
		}

		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
