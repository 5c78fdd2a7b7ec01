package security

import (
	"net/http"
	"time"
)

// GateCookieName carries the gate token between the unlock call and the
// gated endpoints.
const GateCookieName = "gate_token"

// IsSecureRequest determines if the request is over HTTPS. Checks the TLS
// connection, the X-Forwarded-Proto header (for reverse proxies), and the
// URL scheme.
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// CreateGateCookie creates the gate token cookie with proper security flags.
// The Secure flag is set based on the request scheme.
func CreateGateCookie(r *http.Request, token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     GateCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates a cookie that deletes the named cookie.
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
	}
}
