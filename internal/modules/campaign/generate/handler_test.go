package generate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/brandhub/core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerateSameCopyReachesModelEachTime(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ai := &scripted{replies: []string{
		`{"hook":"first","script":"s1","hashtags":[],"visual_direction":"v"}`,
		`{"hook":"second","script":"s2","hashtags":[],"visual_direction":"v"}`,
	}}
	r := gin.New()
	NewHandler(NewService(ai, nil)).RegisterRoutes(r.Group("/api/v1", middleware.IdempotenceByHeader(rdb)))

	body := `{"stage":"copywriter","profile":{"business_name":"Stack Creamery"},"persona":{"name":"Weekend Families"},"postStrategy":{"post_id":"post-1"}}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-campaign", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"hook":"first"`)

	w = send()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"hook":"second"`)
	assert.Equal(t, 2, ai.calls)
}
