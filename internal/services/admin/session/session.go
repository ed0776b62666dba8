// Package session models the signed-in operator: the session record kept in
// a store, the signed cookie token that references it, and the manager that
// ties both to the configured credentials.
package session

import (
	"context"
	"errors"
	"time"
)

// RoleAdmin is the only role an operator can hold.
const RoleAdmin = "admin"

// ErrNotFound is returned by stores when no live session has the id.
var ErrNotFound = errors.New("session not found")

// Session is one authenticated operator login.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	PutSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// Sweeper is implemented by stores that need expired rows removed
// explicitly.
type Sweeper interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
