package handlers

import (
	"database/sql"
	"time"

	"github.com/event-planner/app/internal/session"
	"go.uber.org/zap"
)

// Handler carries the dependencies every endpoint needs. Services never
// read ambient globals; the authenticated user travels in the request
// context (see middleware.go).
type Handler struct {
	db         *sql.DB
	logger     *zap.Logger
	sessions   session.Store
	sessionTTL time.Duration
}

func New(db *sql.DB, logger *zap.Logger, sessions session.Store, sessionTTL time.Duration) *Handler {
	return &Handler{
		db:         db,
		logger:     logger.Named("handlers"),
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}
