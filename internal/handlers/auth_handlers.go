package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/event-planner/app/internal/database"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionCookieName = "session_token"

// Register handles account creation. On success the new user is logged
// in immediately, matching the registration flow the clients expect.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	email := r.FormValue("email")
	firstName := r.FormValue("first_name")
	lastName := r.FormValue("last_name")

	if username == "" || password == "" || email == "" {
		h.respondWithError(w, http.StatusBadRequest, "Username, password and email are required")
		return
	}

	taken, err := database.UsernameTaken(h.db, username)
	if err != nil {
		h.logger.Error("checking username availability", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if taken {
		h.respondWithError(w, http.StatusConflict, "Username is already taken")
		return
	}

	user, err := database.CreateUser(h.db, username, password, email, firstName, lastName)
	if err != nil {
		// Covers the username/email race with the check above as well.
		h.logger.Error("creating user", zap.String("username", username), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Registration failed. Username or email may already exist.")
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.logger.Error("starting session after registration", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Registration succeeded but login failed")
		return
	}

	h.respondWithSuccess(w, "Registration successful")
}

// Login verifies credentials and establishes a session. Unknown
// username and wrong password produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.respondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := database.GetUserByUsername(h.db, username)
	if err != nil {
		if err != sql.ErrNoRows {
			h.logger.Error("fetching user for login", zap.Error(err))
			h.respondWithError(w, http.StatusInternalServerError, "Login failed")
			return
		}
		h.respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := database.VerifyPassword(user.PasswordHash, password); err != nil {
		h.respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := database.UpdateLastLogin(h.db, user.ID); err != nil {
		// Not worth failing the login over.
		h.logger.Warn("updating last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.logger.Error("starting session", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.respondWithSuccess(w, "Login successful")
}

// Logout drops the session and expires the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("deleting session", zap.Error(err))
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	h.respondWithSuccess(w, "Logged out")
}

// CheckUsername is the registration form's availability probe.
func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		h.respondWithError(w, http.StatusBadRequest, "username parameter is required")
		return
	}

	taken, err := database.UsernameTaken(h.db, username)
	if err != nil {
		h.logger.Error("checking username availability", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Could not check username")
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]bool{"taken": taken})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	sessionID, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	token := sessionID.String()

	if err := h.sessions.Create(r.Context(), token, userID, h.sessionTTL); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
