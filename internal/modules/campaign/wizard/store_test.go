package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	pkgredis "github.com/brandhub/core/internal/pkg/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(pkgredis.New(rdb), ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	st, _ := toCopyReview(t, &fakeGenerator{})
	st.SessionID = "sess-9"
	require.NoError(t, store.Save(ctx, st))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+st.ID))

	loaded, err := store.Load(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess-9", loaded.SessionID)
	assert.Equal(t, StageCopyReview, loaded.Stage)
	assert.Equal(t, st.Brief, loaded.Brief)
	assert.Equal(t, st.Posts, loaded.Posts)
	assert.Equal(t, st.ContentCalendar, loaded.ContentCalendar)
	assert.True(t, loaded.CreatedAt.Equal(st.CreatedAt))
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewState("wiz-2", "", "p", now)))
	assert.Equal(t, DefaultTTL, mr.TTL(keyPrefix+"wiz-2"))

	mr.FastForward(DefaultTTL + time.Second)
	_, err := store.Load(ctx, "wiz-2")
	assert.ErrorIs(t, err, ErrNotFound)
}
