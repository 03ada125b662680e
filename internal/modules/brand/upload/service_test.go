package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brandhub/core/internal/database"
	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/brand/suggestion"
	"github.com/brandhub/core/internal/pkg/llm"
	"github.com/brandhub/core/internal/pkg/objectstore"
	pkgredis "github.com/brandhub/core/internal/pkg/redis"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	svc      *Service
	profiles *profile.Service
	sess     *session.Session
	store    *objectstore.LocalStore
	prompts  []string
}

func newFixture(t *testing.T, reply func(prompt string) (string, error), opts Options) *fixture {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store, err := objectstore.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	f := &fixture{
		profiles: profile.NewService(profile.NewGormRepository(db), nil),
		sess:     session.NewManager(pkgredis.New(rdb), time.Hour).Open("up"),
		store:    store,
	}
	ai := llm.ClientFunc(func(_ context.Context, _, prompt string) (string, error) {
		f.prompts = append(f.prompts, prompt)
		return reply(prompt)
	})
	f.svc = NewService(store, f.profiles, ai, opts, nil)
	return f
}

func TestUploadRecordsMetadataOnProfile(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	p, err := f.profiles.Save(ctx, f.sess, &models.BusinessProfile{BusinessName: "Tidal Coffee"})
	require.NoError(t, err)

	body := "We roast small batches every morning."
	res, err := f.svc.Upload(ctx, f.sess, UploadInput{
		ProfileID: p.ID,
		FileType:  FileTypeBusinessInfo,
		FileName:  "about.txt",
		Size:      int64(len(body)),
		Body:      strings.NewReader(body),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.FileURL, "/uploads/brand-uploads/"+p.ID+"/"))
	assert.Equal(t, "txt", res.Kind)

	stored, err := f.profiles.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.UploadedFiles, 1)
	assert.Equal(t, "about.txt", stored.UploadedFiles[0].Name)
	assert.Equal(t, res.FileURL, stored.UploadedFiles[0].URL)
}

func TestUploadRejectsOversizedAndUnsupported(t *testing.T) {
	f := newFixture(t, nil, Options{MaxBytes: 8})
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, f.sess, UploadInput{FileName: "big.txt", Size: 9, Body: strings.NewReader("123456789")})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = f.svc.Upload(ctx, f.sess, UploadInput{FileName: "big.txt", Size: -1, Body: strings.NewReader("123456789")})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = f.svc.Upload(ctx, f.sess, UploadInput{FileName: "x.png", Body: bytes.NewReader([]byte{0x89, 'P', 'N', 'G'})})
	assert.Error(t, err)
}

func TestProcessExtractsAndRestrictsSuggestions(t *testing.T) {
	reply := func(string) (string, error) {
		return "Here you go:\n```json\n" +
			`{"voice":{"tones":["warm"]},"business_name":"Ignored","personas":[{"name":"x"}]}` +
			"\n```", nil
	}
	f := newFixture(t, reply, Options{ExtractChars: 20})
	ctx := context.Background()

	doc := "Our voice is warm and welcoming. " + strings.Repeat("pad ", 50)
	url, err := f.store.Put(ctx, "brand-uploads/voice.txt", strings.NewReader(doc), int64(len(doc)), "text/plain")
	require.NoError(t, err)

	out, err := f.svc.Process(ctx, ProcessRequest{FileURL: url, FileType: FileTypeBrandVoice})
	require.NoError(t, err)
	require.NotNil(t, out.Voice)
	assert.Equal(t, []string{"warm"}, *out.Voice.Tones)
	assert.Nil(t, out.BusinessName)
	assert.Nil(t, out.Personas)

	require.Len(t, f.prompts, 1)
	assert.Contains(t, f.prompts[0], "Our voice is warm an")
	assert.NotContains(t, f.prompts[0], "pad pad")
	assert.Contains(t, f.prompts[0], `"loved_words"`)
}

func TestProcessDownloadsRemoteFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Weekend families love our waffle cones."))
	}))
	t.Cleanup(srv.Close)

	f := newFixture(t, func(string) (string, error) { return `{"audience":{"platforms":["instagram"]}}`, nil }, Options{})
	ctx := context.Background()

	out, err := f.svc.Process(ctx, ProcessRequest{FileURL: srv.URL + "/doc.txt", FileType: FileTypePersonaResearch})
	require.NoError(t, err)
	require.NotNil(t, out.Audience)
	assert.Equal(t, []string{"instagram"}, *out.Audience.Platforms)

	_, err = f.svc.Process(ctx, ProcessRequest{FileURL: srv.URL + "/missing", FileType: FileTypePersonaResearch})
	assert.ErrorIs(t, err, ErrFetch)
}

func TestProcessValidationAndMalformedReply(t *testing.T) {
	f := newFixture(t, func(string) (string, error) { return "sorry, no JSON today", nil }, Options{})
	ctx := context.Background()

	_, err := f.svc.Process(ctx, ProcessRequest{FileURL: "/uploads/x.txt", FileType: "recipes"})
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, f.prompts)

	url, err := f.store.Put(ctx, "a.txt", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)
	out, err := f.svc.Process(ctx, ProcessRequest{FileURL: url, FileType: FileTypeBusinessInfo})
	require.NoError(t, err)
	assert.Equal(t, suggestion.Suggestions{}, *out)
}

func TestHandlerMapsGenerationErrors(t *testing.T) {
	f := newFixture(t, func(string) (string, error) {
		return "", &llm.Error{Provider: "openai", StatusCode: 429, Message: "rate limited", Err: errors.New("429")}
	}, Options{})
	ctx := context.Background()
	url, err := f.store.Put(ctx, "b.txt", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)

	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/process-brand-upload",
		strings.NewReader(`{"fileUrl":"`+url+`","fileType":"brand_voice"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "rate limited")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/process-brand-upload", strings.NewReader(`{"fileType":"brand_voice"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerMultipartUpload(t *testing.T) {
	f := newFixture(t, nil, Options{})
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySession, f.sess)
		c.Next()
	})
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("plain notes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"fileUrl":"/uploads/brand-uploads/unassigned/`)
}
