package models

import (
	"database/sql"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	LastLogin    sql.NullTime `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}
