package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

type Event struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Date         time.Time      `json:"date"`
	EndDate      sql.NullTime   `json:"-"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	PostalCode   string         `json:"postal_code"`
	Country      string         `json:"country"`
	EventTypeID  sql.NullInt64  `json:"-"`
	UserID       int64          `json:"user_id"`
	MaxAttendees sql.NullInt64  `json:"-"`
	ImageURL     sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`

	// Populated by joins when listing or fetching a single event.
	OrganizerName string `json:"organizer_name,omitempty"`
	EventType     string `json:"event_type,omitempty"`
	// RSVPStatus is set when listing events a user is attending.
	RSVPStatus string `json:"rsvp_status,omitempty"`
}

// eventJSON mirrors Event with the nullable columns flattened, so
// clients see plain values or null instead of sql.Null* wrappers.
type eventJSON struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          time.Time  `json:"date"`
	EndDate       *time.Time `json:"end_date"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	PostalCode    string     `json:"postal_code"`
	Country       string     `json:"country"`
	EventTypeID   *int64     `json:"event_type_id"`
	UserID        int64      `json:"user_id"`
	MaxAttendees  *int64     `json:"max_attendees"`
	ImageURL      *string    `json:"image_url"`
	CreatedAt     time.Time  `json:"created_at"`
	OrganizerName string     `json:"organizer_name,omitempty"`
	EventType     string     `json:"event_type,omitempty"`
	RSVPStatus    string     `json:"rsvp_status,omitempty"`
}

func (e *Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Date:          e.Date,
		Address:       e.Address,
		City:          e.City,
		State:         e.State,
		PostalCode:    e.PostalCode,
		Country:       e.Country,
		UserID:        e.UserID,
		CreatedAt:     e.CreatedAt,
		OrganizerName: e.OrganizerName,
		EventType:     e.EventType,
		RSVPStatus:    e.RSVPStatus,
	}
	if e.EndDate.Valid {
		out.EndDate = &e.EndDate.Time
	}
	if e.EventTypeID.Valid {
		out.EventTypeID = &e.EventTypeID.Int64
	}
	if e.MaxAttendees.Valid {
		out.MaxAttendees = &e.MaxAttendees.Int64
	}
	if e.ImageURL.Valid {
		out.ImageURL = &e.ImageURL.String
	}
	return json.Marshal(out)
}
