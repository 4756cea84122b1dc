// Package session stores the mapping from session tokens to user IDs.
// Tokens are opaque; generating them (uuid) and setting cookies is the
// handlers' concern.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a token is unknown or has expired.
var ErrNotFound = errors.New("session: token not found")

// Store persists active sessions. The in-memory implementation is the
// default; the Redis one survives restarts and can be shared between
// instances.
type Store interface {
	Create(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}
