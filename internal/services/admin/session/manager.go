package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/platform/id"
)

const (
	// DefaultUsername and DefaultPassword are the fallback operator
	// credentials.
	DefaultUsername = "admin"
	DefaultPassword = "admin123"

	// DefaultTTL bounds how long a login stays valid.
	DefaultTTL = 12 * time.Hour
)

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials configures the single operator account. PasswordHash, when
// set, is a bcrypt hash that takes precedence over Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// ManagerConfig wires a Manager.
type ManagerConfig struct {
	Store       Store
	Secret      []byte
	Credentials Credentials
	TTL         time.Duration
	Now         func() time.Time
}

// Manager authenticates the operator and tracks their sessions.
type Manager struct {
	store    Store
	codec    *TokenCodec
	username string
	hash     []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	codec, err := NewTokenCodec(cfg.Secret, now)
	if err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	username := strings.TrimSpace(cfg.Credentials.Username)
	if username == "" {
		username = DefaultUsername
	}
	var hash []byte
	if h := strings.TrimSpace(cfg.Credentials.PasswordHash); h != "" {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("parse password hash: %w", err)
		}
		hash = []byte(h)
	} else {
		password := cfg.Credentials.Password
		if password == "" {
			password = DefaultPassword
		}
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	return &Manager{
		store:    cfg.Store,
		codec:    codec,
		username: username,
		hash:     hash,
		ttl:      ttl,
		now:      now,
	}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Login checks the credentials and starts a session. The returned token is
// the cookie value.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(m.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(m.hash, []byte(password))
	if !userOK || passErr != nil {
		return Session{}, "", ErrInvalidCredentials
	}

	sessionID, err := id.NewID()
	if err != nil {
		return Session{}, "", err
	}
	now := m.now().UTC()
	s := Session{
		ID:        sessionID,
		Username:  m.username,
		Role:      RoleAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.PutSession(ctx, s); err != nil {
		return Session{}, "", fmt.Errorf("store session: %w", err)
	}
	token, err := m.codec.Issue(s)
	if err != nil {
		return Session{}, "", err
	}
	return s, token, nil
}

// Authenticate resolves a cookie token to its live session.
func (m *Manager) Authenticate(ctx context.Context, token string) (Session, error) {
	sessionID, err := m.codec.Parse(token)
	if errors.Is(err, ErrTokenExpired) {
		if err := m.store.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
			return Session{}, fmt.Errorf("delete expired session: %w", err)
		}
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthenticated, "session expired", err)
	}
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthenticated, "session token rejected", err)
	}
	s, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, apperrors.Wrap(apperrors.CodeUnauthenticated, "session not found", err)
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if s.Expired(m.now()) {
		_ = m.store.DeleteSession(ctx, s.ID)
		return Session{}, apperrors.New(apperrors.CodeUnauthenticated, "session expired")
	}
	return s, nil
}

// Logout ends the session named by token. Unknown or malformed tokens are
// ignored.
func (m *Manager) Logout(ctx context.Context, token string) error {
	sessionID, err := m.codec.Parse(token)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		return nil
	}
	if err := m.store.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Sweep removes expired sessions when the store supports it.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	sweeper, ok := m.store.(Sweeper)
	if !ok {
		return 0, nil
	}
	return sweeper.DeleteExpiredSessions(ctx, m.now())
}
