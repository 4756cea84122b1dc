package database

import (
	"database/sql"
	"fmt"

	"github.com/event-planner/app/internal/models"
)

// SetRSVPStatus records a user's latest response to an event. A single
// upsert keeps at most one row per (event, user) pair and avoids the
// race a separate check-then-write would have. All three status values,
// including not_attending, are stored rather than deleted, so a
// declined invitation still shows up with its history intact.
func SetRSVPStatus(db *sql.DB, eventID, userID int64, status string) error {
	if !models.ValidRSVPStatus(status) {
		return fmt.Errorf("invalid rsvp status %q", status)
	}

	stmt, err := db.Prepare(`
		INSERT INTO rsvps (event_id, user_id, status, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(event_id, user_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(eventID, userID, status)
	return err
}

// GetRSVPByUserForEvent retrieves a specific user's RSVP for an event.
// Returns sql.ErrNoRows when the user has not responded.
func GetRSVPByUserForEvent(db *sql.DB, eventID, userID int64) (*models.RSVP, error) {
	rsvp := &models.RSVP{}
	row := db.QueryRow(`
		SELECT r.id, r.event_id, r.user_id, r.status, r.created_at, r.updated_at, u.username
		FROM rsvps r
		JOIN users u ON r.user_id = u.id
		WHERE r.event_id = ? AND r.user_id = ?
	`, eventID, userID)

	err := row.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt, &rsvp.Username)
	if err != nil {
		return nil, err
	}
	return rsvp, nil
}

// GetRSVPsForEvent retrieves all RSVPs for an event, including each
// responder's username, most recently updated first.
func GetRSVPsForEvent(db *sql.DB, eventID int64) ([]*models.RSVP, error) {
	rows, err := db.Query(`
		SELECT r.id, r.event_id, r.user_id, r.status, r.created_at, r.updated_at, u.username
		FROM rsvps r
		JOIN users u ON r.user_id = u.id
		WHERE r.event_id = ?
		ORDER BY r.updated_at DESC, r.id DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*models.RSVP
	for rows.Next() {
		rsvp := &models.RSVP{}
		err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt, &rsvp.Username)
		if err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rsvps, nil
}
