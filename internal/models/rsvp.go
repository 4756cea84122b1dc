package models

import "time"

const (
	RSVPStatusAttending    = "attending"
	RSVPStatusMaybe        = "maybe"
	RSVPStatusNotAttending = "not_attending"
)

// ValidRSVPStatus reports whether s is one of the three allowed
// status values. Anything else must be rejected before it reaches
// storage.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPStatusAttending, RSVPStatusMaybe, RSVPStatusNotAttending:
		return true
	}
	return false
}

type RSVP struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username,omitempty"` // For display
}
