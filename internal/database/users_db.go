package database

import (
	"database/sql"

	"github.com/event-planner/app/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UsernameTaken reports whether a user with the given username already
// exists. Used both during registration and by the availability probe.
func UsernameTaken(db *sql.DB, username string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser hashes the password and inserts a new user.
func CreateUser(db *sql.DB, username, password, email, firstName, lastName string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("INSERT INTO users(username, password_hash, email, first_name, last_name) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(username, string(hashedPassword), email, firstName, lastName)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Retrieve the user so DB defaults like created_at are populated.
	return GetUserByID(db, id)
}

// GetUserByUsername retrieves a user by username.
func GetUserByUsername(db *sql.DB, username string) (*models.User, error) {
	user := &models.User{}
	row := db.QueryRow("SELECT id, username, password_hash, email, first_name, last_name, last_login, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.FirstName, &user.LastName, &user.LastLogin, &user.CreatedAt)
	if err != nil {
		return nil, err // This will include sql.ErrNoRows if not found
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func GetUserByID(db *sql.DB, id int64) (*models.User, error) {
	user := &models.User{}
	row := db.QueryRow("SELECT id, username, password_hash, email, first_name, last_name, last_login, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.FirstName, &user.LastName, &user.LastLogin, &user.CreatedAt)
	if err != nil {
		return nil, err // This will include sql.ErrNoRows if not found
	}
	return user, nil
}

// UpdateLastLogin stamps the user's last_login column. Called on every
// successful login.
func UpdateLastLogin(db *sql.DB, id int64) error {
	_, err := db.Exec("UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}

// VerifyPassword compares a stored hashed password with a plaintext password.
func VerifyPassword(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
