package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc *Service, sess *session.Session) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySession, sess)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerProfileLifecycle(t *testing.T) {
	svc, sessions := newTestService(t)
	sess := sessions.Open("h1")
	r := newTestRouter(svc, sess)

	w := doJSON(r, http.MethodPost, "/api/v1/profiles", `{"business_name":"Tidal Coffee","locations":["Pier"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.BusinessProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(r, http.MethodGet, "/api/v1/profiles/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	base := "/api/v1/profiles/" + created.ID
	w = doJSON(r, http.MethodPost, base+"/locations", `{"value":"Market Hall"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(r, http.MethodDelete, base+"/locations", `{"value":"Pier"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.BusinessProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, []string{"Market Hall"}, []string(updated.Locations))

	w = doJSON(r, http.MethodPut, base+"/programs", `{"name":"Bean Club","type":"membership"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPut, base+"/programs", `{"name":"Bad","type":"gold"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodDelete, base+"/personas/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/profiles", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all map[string]models.BusinessProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Contains(t, all, created.ID)

	w = doJSON(r, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerSaveValidation(t *testing.T) {
	svc, sessions := newTestService(t)
	r := newTestRouter(svc, sessions.Open("h2"))

	w := doJSON(r, http.MethodPost, "/api/v1/profiles", `{"business_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/profiles/missing/select", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerSelectSwitchesCurrent(t *testing.T) {
	svc, sessions := newTestService(t)
	sess := sessions.Open("h3")
	r := newTestRouter(svc, sess)
	ctx := context.Background()

	a, err := svc.Save(ctx, sess, &models.BusinessProfile{BusinessName: "A"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, sess, &models.BusinessProfile{BusinessName: "B"})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/v1/profiles/"+a.ID+"/select", "")
	require.Equal(t, http.StatusOK, w.Code)

	id, err := sess.CurrentProfileID(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, id)
}

func TestHandlerPersonaListRoutes(t *testing.T) {
	svc, sessions := newTestService(t)
	sess := sessions.Open("h4")
	r := newTestRouter(svc, sess)

	saved, err := svc.Save(context.Background(), sess, &models.BusinessProfile{
		BusinessName: "Tidal Coffee",
		Personas: []models.Persona{{
			Name:           "Commuters",
			Psychographics: models.Psychographics{Goals: []string{"g1", "g2", "g3", "g4"}},
		}},
	})
	require.NoError(t, err)
	personaID := saved.Personas[0].ID
	require.NotEmpty(t, personaID)
	base := "/api/v1/profiles/" + saved.ID + "/personas/" + personaID

	decode := func(w *httptest.ResponseRecorder) models.Persona {
		t.Helper()
		var p models.BusinessProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		require.Len(t, p.Personas, 1)
		return p.Personas[0]
	}

	w := doJSON(r, http.MethodPost, base+"/psychographics/goals", `{"value":"g5"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(w).Psychographics.Goals, MaxPsychographicEntries)

	w = doJSON(r, http.MethodPost, base+"/psychographics/goals", `{"value":"g6"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"g1", "g2", "g3", "g4", "g5"}, decode(w).Psychographics.Goals)

	w = doJSON(r, http.MethodPost, base+"/sets/platforms", `{"value":"instagram"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"instagram"}, decode(w).SocialBehavior.Platforms)
	w = doJSON(r, http.MethodPost, base+"/sets/platforms", `{"value":"instagram"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(w).SocialBehavior.Platforms)

	w = doJSON(r, http.MethodPost, base+"/sets/moods", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodPost, "/api/v1/profiles/"+saved.ID+"/personas/nope/sets/platforms", `{"value":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
