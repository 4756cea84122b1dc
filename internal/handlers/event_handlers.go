package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/event-planner/app/internal/database"
	"github.com/event-planner/app/internal/models"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// datetime-local inputs submit this layout.
const formDateTimeLayout = "2006-01-02T15:04"

// ListEvents serves the public event list with optional filters. All
// provided filters combine with AND; absent ones are ignored.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := database.EventFilter{
		Search:     q.Get("search"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		PostalCode: q.Get("postal_code"),
		Date:       q.Get("date"),
	}

	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid year filter")
			return
		}
		filter.Year = year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			h.respondWithError(w, http.StatusBadRequest, "Invalid month filter")
			return
		}
		filter.Month = month
	}
	if v := q.Get("max_attendees"); v != "" {
		maxAttendees, err := strconv.ParseInt(v, 10, 64)
		if err != nil || maxAttendees < 1 {
			h.respondWithError(w, http.StatusBadRequest, "Invalid max_attendees filter")
			return
		}
		filter.MaxAttendees = maxAttendees
	}

	events, err := database.ListEvents(h.db, filter)
	if err != nil {
		h.logger.Error("listing events", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Error retrieving events")
		return
	}
	if events == nil {
		events = []*models.Event{}
	}

	h.respondWithJSON(w, http.StatusOK, events)
}

// GetEvent serves a single event with organizer and type enrichment.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := database.GetEventByID(h.db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			h.respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("fetching event", zap.Int64("event_id", id), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Error retrieving event")
		return
	}

	h.respondWithJSON(w, http.StatusOK, event)
}

// EventActions dispatches authenticated POST /events requests on their
// action field. The set of actions is closed; anything else is
// rejected.
func (h *Handler) EventActions(w http.ResponseWriter, r *http.Request) {
	// 10 MB cap in case a multipart form shows up.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Error parsing form")
			return
		}
	}

	userID, ok := UserIDFrom(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch action := r.FormValue("action"); action {
	case "add":
		h.createEvent(w, r, userID)
	case "rsvp":
		h.submitRSVP(w, r, userID)
	default:
		h.respondWithError(w, http.StatusBadRequest, "Invalid request")
	}
}

// createEvent handles action=add. Title, date, address and city are
// required server-side, not just in the client form.
func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request, userID int64) {
	title := r.FormValue("title")
	dateStr := r.FormValue("date")
	address := r.FormValue("address")
	city := r.FormValue("city")

	if title == "" || dateStr == "" || address == "" || city == "" {
		h.respondWithError(w, http.StatusBadRequest, "Title, date, address and city are required")
		return
	}

	date, err := time.Parse(formDateTimeLayout, dateStr)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DDTHH:MM.")
		return
	}

	event := &models.Event{
		Title:       title,
		Description: r.FormValue("description"),
		Date:        date,
		Address:     address,
		City:        city,
		State:       r.FormValue("state"),
		PostalCode:  r.FormValue("postal_code"),
		Country:     r.FormValue("country"),
		UserID:      userID,
	}

	if v := r.FormValue("end_date"); v != "" {
		endDate, err := time.Parse(formDateTimeLayout, v)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid end date format. Use YYYY-MM-DDTHH:MM.")
			return
		}
		event.EndDate = sql.NullTime{Time: endDate, Valid: true}
	}
	if v := r.FormValue("event_type_id"); v != "" {
		typeID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid event type")
			return
		}
		event.EventTypeID = sql.NullInt64{Int64: typeID, Valid: true}
	}
	if v := r.FormValue("max_attendees"); v != "" {
		maxAttendees, err := strconv.ParseInt(v, 10, 64)
		if err != nil || maxAttendees < 1 {
			h.respondWithError(w, http.StatusBadRequest, "Invalid max attendees value")
			return
		}
		event.MaxAttendees = sql.NullInt64{Int64: maxAttendees, Valid: true}
	}
	if v := r.FormValue("image_url"); v != "" {
		event.ImageURL = sql.NullString{String: v, Valid: true}
	}

	if _, err := database.CreateEvent(h.db, event); err != nil {
		h.logger.Error("creating event", zap.Int64("user_id", userID), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Failed to add event")
		return
	}

	h.respondWithSuccess(w, "Event added successfully")
}

// submitRSVP handles action=rsvp. The status value is validated before
// anything touches storage.
func (h *Handler) submitRSVP(w http.ResponseWriter, r *http.Request, userID int64) {
	eventIDStr := r.FormValue("event_id")
	status := r.FormValue("status")

	if eventIDStr == "" || status == "" {
		h.respondWithError(w, http.StatusBadRequest, "event_id and status are required")
		return
	}

	eventID, err := strconv.ParseInt(eventIDStr, 10, 64)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}
	if !models.ValidRSVPStatus(status) {
		h.respondWithError(w, http.StatusBadRequest, "Invalid RSVP status value")
		return
	}

	if err := database.SetRSVPStatus(h.db, eventID, userID, status); err != nil {
		h.logger.Error("setting rsvp status",
			zap.Int64("event_id", eventID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Failed to update RSVP status")
		return
	}

	h.respondWithSuccess(w, "RSVP recorded")
}

// DeleteEvent removes an event if the caller owns it. Not-found and
// not-owner collapse into the same generic failure so callers cannot
// probe which events exist.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	deleted, err := database.DeleteEvent(h.db, id, userID)
	if err != nil {
		h.logger.Error("deleting event", zap.Int64("event_id", id), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Failed to remove event")
		return
	}
	if !deleted {
		h.respondWithError(w, http.StatusOK, "Failed to remove event")
		return
	}

	h.respondWithSuccess(w, "Event removed successfully")
}

// ListEventTypes serves the static lookup used by the create form.
func (h *Handler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := database.ListEventTypes(h.db)
	if err != nil {
		h.logger.Error("listing event types", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Error retrieving event types")
		return
	}
	if types == nil {
		types = []*models.EventType{}
	}
	h.respondWithJSON(w, http.StatusOK, types)
}
