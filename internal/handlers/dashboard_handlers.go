package handlers

import (
	"net/http"

	"github.com/event-planner/app/internal/database"
	"github.com/event-planner/app/internal/models"
	"go.uber.org/zap"
)

// MyEvents serves the events the caller organizes, newest first.
func (h *Handler) MyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	events, err := database.GetUserEvents(h.db, userID)
	if err != nil {
		h.logger.Error("listing user events", zap.Int64("user_id", userID), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Error retrieving events")
		return
	}
	if events == nil {
		events = []*models.Event{}
	}
	h.respondWithJSON(w, http.StatusOK, events)
}

// AttendingEvents serves the events the caller has RSVP'd to, each with
// the caller's status attached.
func (h *Handler) AttendingEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	events, err := database.GetUserAttendingEvents(h.db, userID)
	if err != nil {
		h.logger.Error("listing attending events", zap.Int64("user_id", userID), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Error retrieving events")
		return
	}
	if events == nil {
		events = []*models.Event{}
	}
	h.respondWithJSON(w, http.StatusOK, events)
}
