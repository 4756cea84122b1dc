package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/event-planner/app/internal/database"
	"github.com/event-planner/app/internal/session"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// testServer bundles an httptest.Server with its dependencies.
type testServer struct {
	server *httptest.Server
	db     *sql.DB
	client *http.Client // carries the session cookie
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	h := New(db, zap.NewNop(), session.NewMemoryStore(), time.Hour)
	server := httptest.NewServer(h.Router())

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	return &testServer{server: server, db: db, client: client}
}

func (ts *testServer) Teardown() {
	ts.server.Close()
	ts.db.Close()
}

func decodeStatus(t *testing.T, resp *http.Response) StatusResponse {
	t.Helper()
	defer resp.Body.Close()
	var out StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode status response: %v", err)
	}
	return out
}

// register is a helper that signs up a user through the API, which also
// logs the client in.
func (ts *testServer) register(t *testing.T, username, password string) {
	t.Helper()
	resp, err := ts.client.PostForm(ts.server.URL+"/api/register", url.Values{
		"username":   {username},
		"password":   {password},
		"email":      {username + "@example.com"},
		"first_name": {"Test"},
		"last_name":  {"User"},
	})
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if body := decodeStatus(t, resp); body.Status != "success" {
		t.Fatalf("register failed: %+v", body)
	}
}

func TestRegisterAndAutoLogin(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Teardown()

	ts.register(t, "alice", "password123")

	// Registration establishes a session; a protected route must work.
	resp, err := ts.client.Get(ts.server.URL + "/api/dashboard/events")
	if err != nil {
		t.Fatalf("dashboard request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("dashboard after register status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Teardown()

	t.Run("Missing fields", func(t *testing.T) {
		resp, err := ts.client.PostForm(ts.server.URL+"/api/register", url.Values{
			"username": {"bob"},
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
		if body := decodeStatus(t, resp); body.Status != "error" {
			t.Errorf("body status = %q, want error", body.Status)
		}
	})

	t.Run("Duplicate username", func(t *testing.T) {
		ts.register(t, "carol", "password123")

		resp, err := ts.client.PostForm(ts.server.URL+"/api/register", url.Values{
			"username": {"carol"},
			"password": {"different"},
			"email":    {"carol2@example.com"},
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
		}
		if body := decodeStatus(t, resp); body.Status != "error" {
			t.Errorf("body status = %q, want error", body.Status)
		}
	})
}

func TestLoginAndLogout(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Teardown()

	ts.register(t, "dave", "password123")

	// Drop the session so login starts fresh.
	resp, err := ts.client.PostForm(ts.server.URL+"/api/logout", url.Values{})
	if err != nil {
		t.Fatalf("logout request failed: %v", err)
	}
	resp.Body.Close()

	t.Run("Wrong password", func(t *testing.T) {
		resp, err := ts.client.PostForm(ts.server.URL+"/api/login", url.Values{
			"username": {"dave"},
			"password": {"nope"},
		})
		if err != nil {
			t.Fatalf("login request failed: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
		}
		resp.Body.Close()
	})

	t.Run("Unknown user gets the same response", func(t *testing.T) {
		resp, err := ts.client.PostForm(ts.server.URL+"/api/login", url.Values{
			"username": {"nobody"},
			"password": {"whatever"},
		})
		if err != nil {
			t.Fatalf("login request failed: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
		}
		resp.Body.Close()
	})

	t.Run("Successful login stamps last_login", func(t *testing.T) {
		resp, err := ts.client.PostForm(ts.server.URL+"/api/login", url.Values{
			"username": {"dave"},
			"password": {"password123"},
		})
		if err != nil {
			t.Fatalf("login request failed: %v", err)
		}
		if body := decodeStatus(t, resp); body.Status != "success" {
			t.Fatalf("login failed: %+v", body)
		}

		user, err := database.GetUserByUsername(ts.db, "dave")
		if err != nil {
			t.Fatalf("GetUserByUsername() error = %v", err)
		}
		if !user.LastLogin.Valid {
			t.Errorf("last_login not stamped after login")
		}
	})

	t.Run("Logout invalidates the session", func(t *testing.T) {
		resp, err := ts.client.PostForm(ts.server.URL+"/api/logout", url.Values{})
		if err != nil {
			t.Fatalf("logout request failed: %v", err)
		}
		resp.Body.Close()

		resp, err = ts.client.Get(ts.server.URL + "/api/dashboard/events")
		if err != nil {
			t.Fatalf("dashboard request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("dashboard after logout status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
		}
	})
}

func TestCheckUsername(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Teardown()

	check := func(username string) bool {
		t.Helper()
		resp, err := ts.client.Get(ts.server.URL + "/api/users/check?username=" + username)
		if err != nil {
			t.Fatalf("check request failed: %v", err)
		}
		defer resp.Body.Close()
		var out map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decoding check response: %v", err)
		}
		return out["taken"]
	}

	if check("eve") {
		t.Errorf("check(eve) = taken before registration")
	}
	ts.register(t, "eve", "password123")
	if !check("eve") {
		t.Errorf("check(eve) = available after registration")
	}
}
