package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/pkg/llm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type scripted struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (s *scripted) Complete(_ context.Context, _, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "{}", nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

func sampleProfile() *models.BusinessProfile {
	return &models.BusinessProfile{
		BusinessName: "Stack Creamery",
		Voice:        models.Voice{BannedWords: []string{"cheap"}},
		Personas:     []models.Persona{{ID: "p-1", Name: "Weekend Families"}},
	}
}

func TestValidateRequiredParamsPerStage(t *testing.T) {
	brief := &models.Brief{Goal: "More weekend visits"}
	cases := []struct {
		name    string
		req     Request
		missing []string
	}{
		{"no stage", Request{}, []string{"stage"}},
		{"strategy needs profile and goal", Request{Stage: StagePersonaStrategy, Brief: &models.Brief{}}, []string{"profile", "brief.goal"}},
		{"strategy ok", Request{Stage: StagePersonaStrategy, Profile: sampleProfile(), Brief: brief}, nil},
		{"calendar needs strategies", Request{Stage: StageContentCalendar, Profile: sampleProfile(), Brief: brief}, []string{"approvedStrategies"}},
		{"copy needs persona and post", Request{Stage: StageCopywriter, Profile: sampleProfile()}, []string{"persona", "postStrategy"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.validate()
			if tc.missing == nil {
				assert.NoError(t, err)
				return
			}
			var mp *MissingParamError
			require.ErrorAs(t, err, &mp)
			assert.Equal(t, tc.missing, mp.Params)
			assert.ErrorIs(t, err, ErrMissingParameter)
		})
	}

	assert.ErrorIs(t, (&Request{Stage: "poetry"}).validate(), ErrUnknownStage)
}

func TestValidationFailsBeforeCallingModel(t *testing.T) {
	ai := &scripted{}
	svc := NewService(ai, nil)
	_, err := svc.Generate(context.Background(), &Request{Stage: StagePersonaStrategy})
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.Zero(t, ai.calls)
}

func TestPersonaStrategyDefaultsMissingFields(t *testing.T) {
	ai := &scripted{replies: []string{`{"persona_strategies":[{"persona_name":"weekend families","key_message":"Treat yourselves"}]}`}}
	svc := NewService(ai, nil)

	out, err := svc.PersonaStrategy(context.Background(), sampleProfile(), models.Brief{Goal: "Visits"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p-1", out[0].PersonaID)
	assert.NotNil(t, out[0].Platforms)
	assert.Empty(t, out[0].Platforms)
	assert.Equal(t, "", out[0].DesiredEmotion)
	assert.Contains(t, ai.prompts[0], "Goal: Visits")
}

func TestContentCalendarAssignsPostIDs(t *testing.T) {
	ai := &scripted{replies: []string{"```json\n" + `{"summary":"Two weeks","posts":[{"day":1,"platform":"instagram"},{"post_id":"x","day":2},{"post_id":"x","day":3}]}` + "\n```"}}
	svc := NewService(ai, nil)

	cal, err := svc.ContentCalendar(context.Background(), sampleProfile(), models.Brief{Goal: "g"}, []models.PersonaStrategy{{PersonaName: "Weekend Families"}})
	require.NoError(t, err)
	require.Len(t, cal.Posts, 3)
	assert.Equal(t, "post-1", cal.Posts[0].PostID)
	assert.Equal(t, "x", cal.Posts[1].PostID)
	assert.Equal(t, "post-3", cal.Posts[2].PostID)
}

func TestMalformedReplyIsNotFatal(t *testing.T) {
	svc := NewService(&scripted{replies: []string{"I cannot help with that."}}, nil)

	out, err := svc.Copywriter(context.Background(), sampleProfile(), &models.Persona{Name: "Weekend Families"}, models.PlannedPost{PostID: "post-1"})
	require.NoError(t, err)
	assert.Equal(t, "", out.Hook)
	assert.Equal(t, []string{}, out.Hashtags)
}

func TestCopywriterPromptCarriesBannedWords(t *testing.T) {
	ai := &scripted{replies: []string{`{"hook":"Stack it up","hashtags":["#icecream"]}`}}
	svc := NewService(ai, nil)

	out, err := svc.Copywriter(context.Background(), sampleProfile(), &models.Persona{Name: "Weekend Families"}, models.PlannedPost{PostID: "post-1"})
	require.NoError(t, err)
	assert.Equal(t, "Stack it up", out.Hook)
	assert.Contains(t, ai.prompts[0], "Never use these words: cheap.")
}

func TestHandlerStatusCodes(t *testing.T) {
	ai := &scripted{}
	r := gin.New()
	NewHandler(NewService(ai, nil)).RegisterRoutes(r.Group("/api/v1"))
	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-campaign", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(`{"stage":"copywriter","profile":{"business_name":"X"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "persona")

	ai.replies = []string{`{"hook":"Hi"}`}
	w = send(`{"stage":"copywriter","profile":{"business_name":"X"},"persona":{"name":"P"},"postStrategy":{"post_id":"post-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var copyOut CopyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &copyOut))
	assert.Equal(t, "Hi", copyOut.Hook)
	assert.Equal(t, []string{}, copyOut.Hashtags)

	ai.err = &llm.Error{Provider: "openai", StatusCode: 500, Message: "model overloaded", Err: errors.New("500")}
	w = send(`{"stage":"persona_strategy","profile":{"business_name":"X"},"brief":{"goal":"g"}}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "model overloaded")
}
