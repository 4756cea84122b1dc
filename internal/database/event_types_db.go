package database

import (
	"database/sql"

	"github.com/event-planner/app/internal/models"
)

// ListEventTypes returns the static event type lookup, seeded by the
// schema, ordered by name.
func ListEventTypes(db *sql.DB) ([]*models.EventType, error) {
	rows, err := db.Query("SELECT id, name FROM event_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.EventType
	for rows.Next() {
		et := &models.EventType{}
		if err := rows.Scan(&et.ID, &et.Name); err != nil {
			return nil, err
		}
		types = append(types, et)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}
