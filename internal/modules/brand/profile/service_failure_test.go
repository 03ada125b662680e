package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brandhub/core/internal/models"
	pkgredis "github.com/brandhub/core/internal/pkg/redis"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errStoreDown = errors.New("store down")

// stubRepo keeps profiles in memory and fails the calls it is told to fail.
type stubRepo struct {
	profiles map[string]*models.BusinessProfile

	findErr     error
	failFindFor string // when set, only this id fails
	listErr     error
	upsertErr   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{profiles: map[string]*models.BusinessProfile{}}
}

func (r *stubRepo) Upsert(_ context.Context, p *models.BusinessProfile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*models.BusinessProfile, error) {
	if r.findErr != nil && (r.failFindFor == "" || r.failFindFor == id) {
		return nil, r.findErr
	}
	return r.profiles[id], nil
}

func (r *stubRepo) FindAll(context.Context) ([]models.BusinessProfile, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.BusinessProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.profiles[id]
	delete(r.profiles, id)
	return ok, nil
}

func newStubService(t *testing.T, repo Repository) (*Service, *observer.ObservedLogs, *session.Manager) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewService(repo, zap.New(core)), logs, session.NewManager(pkgredis.New(rdb), time.Hour)
}

func TestSaveAndGetReturnStoreErrors(t *testing.T) {
	repo := newStubRepo()
	repo.upsertErr = errStoreDown
	svc, logs, sessions := newStubService(t, repo)
	ctx := context.Background()

	_, err := svc.Save(ctx, sessions.Open("f1"), &models.BusinessProfile{BusinessName: "Tidal Coffee"})
	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 1, logs.FilterMessage("profile save failed").FilterLevelExact(zapcore.ErrorLevel).Len())

	repo.findErr = errStoreDown
	_, err = svc.Get(ctx, "any")
	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 1, logs.FilterMessage("profile fetch failed").Len())

	_, err = svc.Save(ctx, sessions.Open("f1"), &models.BusinessProfile{BusinessName: "Tidal Coffee"})
	require.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, repo.profiles)
}

func TestGetCurrentDegradesToSeededDefault(t *testing.T) {
	repo := newStubRepo()
	svc, logs, sessions := newStubService(t, repo)
	ctx := context.Background()
	sess := sessions.Open("f2")
	require.NoError(t, sess.SetCurrentProfileID(ctx, "remembered"))

	repo.findErr = errStoreDown
	repo.failFindFor = "remembered"
	repo.listErr = errStoreDown

	current := svc.GetCurrent(ctx, sess)
	require.NotNil(t, current)
	assert.Equal(t, DefaultBusinessName, current.BusinessName)
	require.Contains(t, repo.profiles, current.ID)

	id, err := sess.CurrentProfileID(ctx)
	require.NoError(t, err)
	assert.Equal(t, current.ID, id)

	assert.Equal(t, 1, logs.FilterMessage("fetch current profile failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("fetch first profile failed").Len())
}

func TestGetCurrentReturnsDefaultWhenStoreIsDown(t *testing.T) {
	repo := newStubRepo()
	repo.findErr = errStoreDown
	repo.listErr = errStoreDown
	repo.upsertErr = errStoreDown
	svc, logs, sessions := newStubService(t, repo)

	current := svc.GetCurrent(context.Background(), sessions.Open("f3"))
	require.NotNil(t, current)
	assert.Equal(t, DefaultBusinessName, current.BusinessName)
	assert.Len(t, current.Personas, 2)
	assert.Empty(t, repo.profiles)
	assert.Equal(t, 1, logs.FilterMessage("seed default profile failed").FilterLevelExact(zapcore.WarnLevel).Len())
}
