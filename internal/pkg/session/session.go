package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtpkg "github.com/brandhub/core/internal/pkg/jwt"
	"github.com/google/uuid"
)

const DefaultTTL = 30 * 24 * time.Hour

const keyPrefix = "brandhub:session:"

// Store is the key/value subset of pkg/redis.Client the session needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Manager issues and resolves browser sessions.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl}
}

// Session remembers which profile a browser is currently viewing.
type Session struct {
	ID    string
	store Store
	ttl   time.Duration
}

// Issue creates a new session and signs a token bound to it.
func (m *Manager) Issue() (string, *Session, error) {
	sid := uuid.New().String()
	token, err := jwtpkg.Sign(sid, m.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, m.Open(sid), nil
}

// Resolve validates token and returns its session.
func (m *Manager) Resolve(token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("session token is required")
	}
	claims, err := jwtpkg.Parse(token)
	if err != nil {
		return nil, err
	}
	return m.Open(claims.SessionID), nil
}

// Open binds an already-known session id, e.g. for background jobs.
func (m *Manager) Open(sid string) *Session {
	return &Session{ID: sid, store: m.store, ttl: m.ttl}
}

func (s *Session) currentProfileKey() string {
	return keyPrefix + s.ID + ":current_profile"
}

// CurrentProfileID returns the remembered profile id, or "" when none is set.
func (s *Session) CurrentProfileID(ctx context.Context) (string, error) {
	if s == nil {
		return "", nil
	}
	return s.store.Get(ctx, s.currentProfileKey())
}

// SetCurrentProfileID records id as the current profile.
func (s *Session) SetCurrentProfileID(ctx context.Context, id string) error {
	if s == nil {
		return nil
	}
	return s.store.Set(ctx, s.currentProfileKey(), id, s.ttl)
}

// ForgetProfile clears the pointer when it references id.
func (s *Session) ForgetProfile(ctx context.Context, id string) error {
	current, err := s.CurrentProfileID(ctx)
	if err != nil || current != id {
		return err
	}
	return s.store.Del(ctx, s.currentProfileKey())
}
