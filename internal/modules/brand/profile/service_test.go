package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brandhub/core/internal/database"
	"github.com/brandhub/core/internal/models"
	pkgredis "github.com/brandhub/core/internal/pkg/redis"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *session.Manager) {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewService(NewGormRepository(db), zap.NewNop())
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc, session.NewManager(pkgredis.New(rdb), time.Hour)
}

func TestGetCurrentSeedsDefaultProfile(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	sess := sessions.Open("s1")

	current := svc.GetCurrent(ctx, sess)
	require.NotNil(t, current)
	assert.Equal(t, DefaultBusinessName, current.BusinessName)
	require.NotEmpty(t, current.ID)

	stored, err := svc.Get(ctx, current.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, DefaultBusinessName, stored.BusinessName)
	assert.Len(t, stored.Personas, 2)

	id, err := sess.CurrentProfileID(ctx)
	require.NoError(t, err)
	assert.Equal(t, current.ID, id)

	again := svc.GetCurrent(ctx, sess)
	assert.Equal(t, current.ID, again.ID)
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetCurrentFallsBackToOldestProfile(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, nil, &models.BusinessProfile{BusinessName: "First"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, nil, &models.BusinessProfile{BusinessName: "Second"})
	require.NoError(t, err)

	fresh := sessions.Open("fresh")
	assert.Equal(t, first.ID, svc.GetCurrent(ctx, fresh).ID)

	stale := sessions.Open("stale")
	require.NoError(t, stale.SetCurrentProfileID(ctx, "gone"))
	assert.Equal(t, first.ID, svc.GetCurrent(ctx, stale).ID)
}

func TestSaveRecordsCurrentProfile(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	sess := sessions.Open("s1")

	a, err := svc.Save(ctx, sess, &models.BusinessProfile{BusinessName: "A"})
	require.NoError(t, err)
	b, err := svc.Save(ctx, sess, &models.BusinessProfile{BusinessName: "B"})
	require.NoError(t, err)
	assert.Equal(t, b.ID, svc.GetCurrent(ctx, sess).ID)

	// re-saving a non-current profile still moves the pointer
	a.Niche = "Bakery"
	_, err = svc.Save(ctx, sess, a)
	require.NoError(t, err)
	assert.Equal(t, a.ID, svc.GetCurrent(ctx, sess).ID)
}

func TestSaveKeepsCreatedAtOnReplace(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Save(ctx, nil, &models.BusinessProfile{BusinessName: "Keep"})
	require.NoError(t, err)
	created := p.CreatedAt

	replacement := &models.BusinessProfile{BusinessName: "Keep v2"}
	replacement.ID = p.ID
	_, err = svc.Save(ctx, nil, replacement)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep v2", stored.BusinessName)
	assert.True(t, created.Equal(stored.CreatedAt))
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestSaveRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Save(context.Background(), nil, &models.BusinessProfile{BusinessName: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestGetMissingReturnsNil(t *testing.T) {
	svc, _ := newTestService(t)
	p, err := svc.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteClearsPointer(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	sess := sessions.Open("s1")

	p, err := svc.Save(ctx, sess, &models.BusinessProfile{BusinessName: "Doomed"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, sess, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	id, err := sess.CurrentProfileID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	deleted, err = svc.Delete(ctx, sess, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdateAndSelect(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	sess := sessions.Open("s1")

	a, err := svc.Save(ctx, nil, &models.BusinessProfile{BusinessName: "A"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, sess, a.ID, func(p *models.BusinessProfile) error {
		AddLocation(p, "Harbour")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Harbour"}, []string(updated.Locations))

	_, err = svc.Update(ctx, sess, "missing", func(*models.BusinessProfile) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Select(ctx, sess, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	selected, err := svc.Select(ctx, sess, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, selected.ID)
}
