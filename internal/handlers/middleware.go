package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFrom extracts the authenticated user's ID from the request
// context. ok is false on unauthenticated requests.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// currentUserID resolves the session cookie to a user ID without
// requiring authentication. Returns 0, false when there is no valid
// session.
func (h *Handler) currentUserID(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return 0, false
	}
	userID, err := h.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// AuthRequired rejects requests without a valid session and injects the
// user ID into the request context for downstream handlers.
func (h *Handler) AuthRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.currentUserID(r)
		if !ok {
			h.respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// LoggingMiddleware logs every request with its duration.
func (h *Handler) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// RecoveryMiddleware turns panics into a generic 500 response.
func (h *Handler) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.logger.Error("recovered from panic", zap.Any("panic", err))
				h.respondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
