package adapthttp

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"innerlight/internal/app"
	"innerlight/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// requireUser validates the session cookie, refreshes the cookie expiry to
// mirror the stored session, and puts the user on the request context.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}

		user, session, err := s.auth.ValidateSession(r.Context(), cookie.Value)
		if errors.Is(err, app.ErrSessionNotFound) {
			clearSessionCookie(w)
			writeError(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
			return
		}

		setSessionCookie(w, r, cookie.Value, session.ExpiresAt)
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin gates a handler behind the admin role.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireUser(func(w http.ResponseWriter, r *http.Request) {
		if !userFrom(r).IsAdmin() {
			writeError(w, http.StatusForbidden, errors.New("admin access required"))
			return
		}
		next(w, r)
	})
}

// userFrom returns the authenticated user. Only valid behind requireUser.
func userFrom(r *http.Request) *domain.User {
	return r.Context().Value(userContextKey).(*domain.User)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the wrapped writer so streamed responses keep working.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
