package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	pkgredis "github.com/brandhub/core/internal/pkg/redis"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionIssuesAndReusesToken(t *testing.T) {
	rdb := newRedis(t)
	m := session.NewManager(pkgredis.New(rdb), time.Hour)

	r := gin.New()
	r.Use(Session(m))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSession(c).ID)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(SessionHeader)
	require.NotEmpty(t, token)
	firstSID := w.Body.String()

	for _, set := range []func(*http.Request){
		func(req *http.Request) { req.Header.Set(SessionHeader, token) },
		func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) },
		func(req *http.Request) { req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token}) },
	} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		set(req)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, firstSID, w.Body.String())
		assert.Empty(t, w.Header().Get(SessionHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "forged")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, firstSID, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(SessionHeader))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitN(newRedis(t), 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	// All three calls land in the same one-second window unless the clock ticks over.
	assert.Equal(t, http.StatusNoContent, codes[0])
	assert.Contains(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, codes[2])
}

func TestIdempotenceBlocksReplayedPost(t *testing.T) {
	r := gin.New()
	r.Use(Idempotence(newRedis(t)))
	calls := 0
	r.POST("/generate", func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})
	r.POST("/fail", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
	})

	send := func(path, body string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send("/generate", `{"stage":"copywriter"}`))
	assert.Equal(t, http.StatusConflict, send("/generate", `{"stage":"copywriter"}`))
	assert.Equal(t, http.StatusCreated, send("/generate", `{"stage":"content_calendar"}`))
	assert.Equal(t, 2, calls)

	// Failures release the key so a manual retry goes through.
	assert.Equal(t, http.StatusBadGateway, send("/fail", `{"x":1}`))
	assert.Equal(t, http.StatusBadGateway, send("/fail", `{"x":1}`))
}

func TestIdempotenceByHeaderAllowsRepeatedBodies(t *testing.T) {
	r := gin.New()
	r.Use(IdempotenceByHeader(newRedis(t)))
	calls := 0
	r.POST("/generate", func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"stage":"copywriter"}`))
		if key != "" {
			req.Header.Set("X-Idempotence", key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send("click-1"))
	assert.Equal(t, http.StatusConflict, send("click-1"))
	assert.Equal(t, 3, calls)
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Empty(t, NormalizeToken("   "))
}
