package database

import "strings"

// EventFilter carries the optional filters accepted by ListEvents.
// Zero values mean "not set" and are ignored when building the query.
type EventFilter struct {
	Search       string // substring match against title OR description
	City         string // substring match
	State        string // substring match
	PostalCode   string // substring match
	Date         string // exact calendar date, "2006-01-02"
	Year         int
	Month        int
	MaxAttendees int64 // events whose cap is <= this value
}

// likeEscaper neutralizes LIKE metacharacters so filter values match
// literally. Every LIKE clause below carries a matching ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// buildEventListQuery translates a sparse filter set into a single
// parameterized query. Every filter value is bound as a parameter, in
// placeholder order; nothing is ever interpolated into the SQL text.
func buildEventListQuery(f EventFilter) (string, []interface{}) {
	query := `SELECT e.id, e.title, e.description, e.date, e.end_date, e.address,
		e.city, e.state, e.postal_code, e.country, e.event_type_id, e.user_id,
		e.max_attendees, e.image_url, e.created_at,
		u.username AS organizer_name, et.name AS event_type
		FROM events e
		LEFT JOIN users u ON e.user_id = u.id
		LEFT JOIN event_types et ON e.event_type_id = et.id`

	var conditions []string
	var args []interface{}

	if f.Search != "" {
		conditions = append(conditions, `(e.title LIKE ? ESCAPE '\' OR e.description LIKE ? ESCAPE '\')`)
		pattern := likePattern(f.Search)
		args = append(args, pattern, pattern)
	}
	if f.City != "" {
		conditions = append(conditions, `e.city LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.City))
	}
	if f.State != "" {
		conditions = append(conditions, `e.state LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.State))
	}
	if f.PostalCode != "" {
		conditions = append(conditions, `e.postal_code LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.PostalCode))
	}
	if f.Date != "" {
		conditions = append(conditions, "DATE(e.date) = ?")
		args = append(args, f.Date)
	}
	if f.Year != 0 {
		conditions = append(conditions, "CAST(strftime('%Y', e.date) AS INTEGER) = ?")
		args = append(args, f.Year)
	}
	if f.Month != 0 {
		conditions = append(conditions, "CAST(strftime('%m', e.date) AS INTEGER) = ?")
		args = append(args, f.Month)
	}
	if f.MaxAttendees != 0 {
		conditions = append(conditions, "e.max_attendees <= ?")
		args = append(args, f.MaxAttendees)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.date ASC"

	return query, args
}
