package database

import (
	"database/sql"
	"time"

	"github.com/event-planner/app/internal/models"
)

// sqliteTime formats a timestamp the way the schema's DATETIME columns
// store it, so DATE() and strftime() in the filter queries behave.
func sqliteTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// CreateEvent inserts a new event owned by event.UserID.
func CreateEvent(db *sql.DB, event *models.Event) (*models.Event, error) {
	stmt, err := db.Prepare(`INSERT INTO events(title, description, date, end_date, address,
		city, state, postal_code, country, event_type_id, user_id, max_attendees, image_url)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var endDate interface{}
	if event.EndDate.Valid {
		endDate = sqliteTime(event.EndDate.Time)
	}
	country := event.Country
	if country == "" {
		country = "Canada"
	}

	res, err := stmt.Exec(event.Title, event.Description, sqliteTime(event.Date), endDate,
		event.Address, event.City, event.State, event.PostalCode, country,
		event.EventTypeID, event.UserID, event.MaxAttendees, event.ImageURL)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Retrieve the event so DB defaults and the join columns are populated.
	return GetEventByID(db, id)
}

func scanEvent(s interface{ Scan(...interface{}) error }) (*models.Event, error) {
	event := &models.Event{}
	var organizerName, eventType sql.NullString
	err := s.Scan(&event.ID, &event.Title, &event.Description, &event.Date, &event.EndDate,
		&event.Address, &event.City, &event.State, &event.PostalCode, &event.Country,
		&event.EventTypeID, &event.UserID, &event.MaxAttendees, &event.ImageURL,
		&event.CreatedAt, &organizerName, &eventType)
	if err != nil {
		return nil, err
	}
	event.OrganizerName = organizerName.String
	event.EventType = eventType.String
	return event, nil
}

// GetEventByID retrieves an event by ID, enriched with the organizer's
// username and the event type name. Returns sql.ErrNoRows when absent.
func GetEventByID(db *sql.DB, id int64) (*models.Event, error) {
	row := db.QueryRow(`SELECT e.id, e.title, e.description, e.date, e.end_date, e.address,
		e.city, e.state, e.postal_code, e.country, e.event_type_id, e.user_id,
		e.max_attendees, e.image_url, e.created_at,
		u.username AS organizer_name, et.name AS event_type
		FROM events e
		LEFT JOIN users u ON e.user_id = u.id
		LEFT JOIN event_types et ON e.event_type_id = et.id
		WHERE e.id = ?`, id)
	return scanEvent(row)
}

// ListEvents returns all events matching every active filter, ordered by
// start date ascending. An empty result is a nil slice, not an error.
func ListEvents(db *sql.DB, filter EventFilter) ([]*models.Event, error) {
	query, args := buildEventListQuery(filter)
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEvent removes an event only when it exists and is owned by
// userID. The false return deliberately does not distinguish "not
// found" from "not owner".
func DeleteEvent(db *sql.DB, id int64, userID int64) (bool, error) {
	res, err := db.Exec("DELETE FROM events WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetUserEvents returns the events a user organizes, newest first.
func GetUserEvents(db *sql.DB, userID int64) ([]*models.Event, error) {
	rows, err := db.Query(`SELECT e.id, e.title, e.description, e.date, e.end_date, e.address,
		e.city, e.state, e.postal_code, e.country, e.event_type_id, e.user_id,
		e.max_attendees, e.image_url, e.created_at,
		u.username AS organizer_name, et.name AS event_type
		FROM events e
		LEFT JOIN users u ON e.user_id = u.id
		LEFT JOIN event_types et ON e.event_type_id = et.id
		WHERE e.user_id = ?
		ORDER BY e.date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetUserAttendingEvents returns the events a user has RSVP'd to, with
// the RSVP status attached, ordered by start date ascending.
func GetUserAttendingEvents(db *sql.DB, userID int64) ([]*models.Event, error) {
	rows, err := db.Query(`SELECT e.id, e.title, e.description, e.date, e.end_date, e.address,
		e.city, e.state, e.postal_code, e.country, e.event_type_id, e.user_id,
		e.max_attendees, e.image_url, e.created_at,
		u.username AS organizer_name, et.name AS event_type, r.status AS rsvp_status
		FROM events e
		JOIN rsvps r ON e.id = r.event_id
		LEFT JOIN users u ON e.user_id = u.id
		LEFT JOIN event_types et ON e.event_type_id = et.id
		WHERE r.user_id = ?
		ORDER BY e.date ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		var organizerName, eventType sql.NullString
		err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Date, &event.EndDate,
			&event.Address, &event.City, &event.State, &event.PostalCode, &event.Country,
			&event.EventTypeID, &event.UserID, &event.MaxAttendees, &event.ImageURL,
			&event.CreatedAt, &organizerName, &eventType, &event.RSVPStatus)
		if err != nil {
			return nil, err
		}
		event.OrganizerName = organizerName.String
		event.EventType = eventType.String
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
