package database

import (
	"database/sql"
	_ "embed"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// InitDB opens a SQLite database and applies the schema. Pass
// ":memory:" for an in-memory database in tests.
func InitDB(dataSourceName string) (*sql.DB, error) {
	// Foreign keys must be switched on per connection; doing it in the
	// DSN covers every connection the pool opens. The rsvps cascade
	// depends on it.
	dsn := dataSourceName
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// One connection keeps writers from tripping over SQLITE_BUSY and
	// stops ":memory:" databases from forking per connection.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
