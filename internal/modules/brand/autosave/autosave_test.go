package autosave

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type recordingSaver struct {
	mu    sync.Mutex
	saved []models.BusinessProfile
	err   error
	ch    chan struct{}
}

func newRecordingSaver() *recordingSaver {
	return &recordingSaver{ch: make(chan struct{}, 16)}
}

func (r *recordingSaver) Save(_ context.Context, _ *session.Session, p *models.BusinessProfile) (*models.BusinessProfile, error) {
	r.mu.Lock()
	r.saved = append(r.saved, *p)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return p, r.err
}

func (r *recordingSaver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.saved))
	for i, p := range r.saved {
		out[i] = p.BusinessName
	}
	return out
}

func draftOf(id, name string) *models.BusinessProfile {
	p := &models.BusinessProfile{BusinessName: name}
	p.ID = id
	return p
}

func TestDebouncerSavesLatestDraftAfterIdle(t *testing.T) {
	saver := newRecordingSaver()
	d := NewDebouncer(saver, 40*time.Millisecond, nil)
	defer d.Stop(context.Background())

	require.NoError(t, d.Schedule(nil, draftOf("p1", "v1")))
	require.NoError(t, d.Schedule(nil, draftOf("p1", "v2")))
	require.NoError(t, d.Schedule(nil, draftOf("p1", "v3")))
	assert.True(t, d.Pending("p1"))

	select {
	case <-saver.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("draft was never saved")
	}
	assert.Equal(t, []string{"v3"}, saver.names())
	assert.False(t, d.Pending("p1"))
}

func TestDebouncerStopFlushesPending(t *testing.T) {
	saver := newRecordingSaver()
	d := NewDebouncer(saver, time.Hour, nil)

	require.NoError(t, d.Schedule(nil, draftOf("a", "A")))
	require.NoError(t, d.Schedule(nil, draftOf("b", "B")))
	d.Stop(context.Background())

	assert.ElementsMatch(t, []string{"A", "B"}, saver.names())
	assert.ErrorIs(t, d.Schedule(nil, draftOf("c", "C")), ErrStopped)
}

func TestDebouncerLogsSaveFailures(t *testing.T) {
	saver := newRecordingSaver()
	saver.err = errors.New("disk full")
	d := NewDebouncer(saver, time.Hour, nil)

	require.NoError(t, d.Schedule(nil, draftOf("a", "A")))
	d.Stop(context.Background())
	assert.Equal(t, []string{"A"}, saver.names())
}

func TestDebouncerValidatesDraft(t *testing.T) {
	d := NewDebouncer(newRecordingSaver(), time.Hour, nil)
	defer d.Stop(context.Background())

	assert.ErrorIs(t, d.Schedule(nil, draftOf("a", " ")), profile.ErrNameRequired)
	assert.False(t, d.Pending("a"))
}

func TestDraftHandler(t *testing.T) {
	saver := newRecordingSaver()
	d := NewDebouncer(saver, time.Hour, nil)

	r := gin.New()
	NewHandler(d).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profiles/p9/draft", strings.NewReader(`{"business_name":"Draft Co"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.True(t, d.Pending("p9"))

	d.Stop(context.Background())
	assert.Equal(t, []string{"Draft Co"}, saver.names())

	req = httptest.NewRequest(http.MethodPut, "/api/v1/profiles/p9/draft", strings.NewReader(`{"business_name":"Late"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
