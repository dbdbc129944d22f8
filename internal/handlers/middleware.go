package handlers

import (
	"log"
	"net/http"
	"time"

	"littlestar/internal/security"
	"littlestar/internal/service"
)

// SessionCookieName is the parent session cookie.
const SessionCookieName = "parent_session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

// RequireParent is middleware that requires a valid parent session token.
func (m *Middleware) RequireParent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
			return
		}

		if err := m.authService.VerifyToken(cookie.Value); err != nil {
			// Clear invalid cookie
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
			})
			respondWithError(w, http.StatusUnauthorized, "Session expired", "", nil)
			return
		}

		next(w, r)
	}
}

// RateLimit throttles requests per client IP. Used on the login route so the
// PIN cannot be brute-forced.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many attempts, please wait", "", nil)
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
