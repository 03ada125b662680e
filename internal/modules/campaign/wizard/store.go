package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgredis "github.com/brandhub/core/internal/pkg/redis"
)

const (
	DefaultTTL = 24 * time.Hour
	keyPrefix  = "brandhub:wizard:"
)

// Store keeps wizard state between requests.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
}

// RedisStore keeps each wizard as a JSON value that expires ttl after its last
// write. Abandoned wizards simply expire.
type RedisStore struct {
	rdb *pkgredis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *pkgredis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return keyPrefix + id
}

// Load returns ErrNotFound for unknown or expired ids.
func (r *RedisStore) Load(ctx context.Context, id string) (*State, error) {
	raw, err := r.rdb.Get(ctx, r.key(id))
	if err != nil {
		return nil, fmt.Errorf("load wizard: %w", err)
	}
	if raw == "" {
		return nil, ErrNotFound
	}
	stored := sessionState{State: &State{}}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	stored.State.SessionID = stored.SessionID
	return stored.State, nil
}

func (r *RedisStore) Save(ctx context.Context, s *State) error {
	raw, err := json.Marshal(sessionState{State: s, SessionID: s.SessionID})
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(s.ID), raw, r.ttl); err != nil {
		return fmt.Errorf("save wizard: %w", err)
	}
	return nil
}
