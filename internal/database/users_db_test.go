package database

import (
	"database/sql"
	"reflect"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB initializes an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	}

	return db, teardown
}

func TestCreateUserAndGetUser(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	t.Run("Create and Get User", func(t *testing.T) {
		createdUser, err := CreateUser(db, "alice", "password123", "alice@example.com", "Alice", "Smith")
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}
		if createdUser.ID == 0 {
			t.Errorf("CreateUser() returned user with ID 0")
		}
		if createdUser.Username != "alice" {
			t.Errorf("CreateUser() username = %v, want alice", createdUser.Username)
		}
		if createdUser.Email != "alice@example.com" {
			t.Errorf("CreateUser() email = %v, want alice@example.com", createdUser.Email)
		}
		if createdUser.CreatedAt.IsZero() {
			t.Errorf("CreateUser() CreatedAt is zero")
		}
		if createdUser.LastLogin.Valid {
			t.Errorf("CreateUser() LastLogin should be null before first login")
		}

		userByID, err := GetUserByID(db, createdUser.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		if !reflect.DeepEqual(userByID, createdUser) {
			t.Errorf("GetUserByID() got = %v, want %v", userByID, createdUser)
		}

		userByUsername, err := GetUserByUsername(db, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername() error = %v", err)
		}
		if !reflect.DeepEqual(userByUsername, createdUser) {
			t.Errorf("GetUserByUsername() got = %v, want %v", userByUsername, createdUser)
		}
	})

	t.Run("Create User with Existing Username", func(t *testing.T) {
		_, err := CreateUser(db, "alice", "otherpassword", "other@example.com", "Other", "User")
		if err == nil {
			t.Errorf("CreateUser() with duplicate username expected error, got nil")
		}
	})

	t.Run("Get Non-existent User", func(t *testing.T) {
		_, err := GetUserByUsername(db, "nobody")
		if err != sql.ErrNoRows {
			t.Errorf("GetUserByUsername() for missing user, got err = %v, want sql.ErrNoRows", err)
		}
	})
}

func TestUsernameTaken(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	taken, err := UsernameTaken(db, "bob")
	if err != nil {
		t.Fatalf("UsernameTaken() error = %v", err)
	}
	if taken {
		t.Errorf("UsernameTaken() = true before user exists, want false")
	}

	if _, err := CreateUser(db, "bob", "password", "bob@example.com", "Bob", "Jones"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	taken, err = UsernameTaken(db, "bob")
	if err != nil {
		t.Fatalf("UsernameTaken() error = %v", err)
	}
	if !taken {
		t.Errorf("UsernameTaken() = false after user exists, want true")
	}
}

func TestVerifyPassword(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	user, err := CreateUser(db, "carol", "s3cret", "carol@example.com", "Carol", "White")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if err := VerifyPassword(user.PasswordHash, "s3cret"); err != nil {
		t.Errorf("VerifyPassword() with correct password error = %v", err)
	}
	if err := VerifyPassword(user.PasswordHash, "wrong"); err == nil {
		t.Errorf("VerifyPassword() with wrong password expected error, got nil")
	}
}

func TestUpdateLastLogin(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	user, err := CreateUser(db, "dave", "password", "dave@example.com", "Dave", "Brown")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if err := UpdateLastLogin(db, user.ID); err != nil {
		t.Fatalf("UpdateLastLogin() error = %v", err)
	}

	updated, err := GetUserByID(db, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if !updated.LastLogin.Valid {
		t.Errorf("LastLogin still null after UpdateLastLogin()")
	}
}
