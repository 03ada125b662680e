package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/modules/brand/autosave"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/brand/suggestion"
	"github.com/brandhub/core/internal/modules/brand/upload"
	"github.com/brandhub/core/internal/modules/campaign/campaign"
	"github.com/brandhub/core/internal/modules/campaign/generate"
	"github.com/brandhub/core/internal/modules/campaign/wizard"
	"github.com/brandhub/core/internal/pkg/objectstore"
	"github.com/brandhub/core/internal/pkg/response"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(sessions *session.Manager) {
	r := a.router
	rc := a.redis

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", a.health)

	// Local uploads are served straight from disk; remote stores hand out their own URLs.
	if local, ok := a.objects.(*objectstore.LocalStore); ok && strings.HasPrefix(local.PublicURL(), "/") {
		r.Static(local.PublicURL(), local.Dir())
	}

	// Services
	profileSvc := profile.NewService(a.stores.Profiles, a.logger)
	suggestionSvc := suggestion.NewService(profileSvc, a.logger)
	uploadSvc := upload.NewService(a.objects, profileSvc, a.llmClient("extraction", a.cfg.AI.ExtractionModel), upload.Options{
		MaxBytes:     a.cfg.UploadMaxBytes(),
		ExtractChars: a.cfg.Uploads.ExtractChars,
		FetchTimeout: a.cfg.UploadFetchTimeout(),
	}, a.logger)
	generateSvc := generate.NewService(a.llmClient("generation", a.cfg.AI.GenerationModel), a.logger)
	campaignSvc := campaign.NewService(a.stores.Campaigns, profileSvc, a.logger)
	wizardSvc := wizard.NewService(
		wizard.NewRedisStore(rc, a.cfg.WizardTTL()),
		profileSvc,
		generateSvc,
		campaignSvc,
		a.logger,
	)
	a.autosave = autosave.NewDebouncer(profileSvc, a.cfg.AutosaveIdle(), a.logger)

	api := r.Group(apiPrefix)
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Session(sessions))

	api.GET("/session", a.currentSession)
	profile.NewHandler(profileSvc).RegisterRoutes(api)
	autosave.NewHandler(a.autosave).RegisterRoutes(api)
	suggestion.NewHandler(suggestionSvc).RegisterRoutes(api)
	campaign.NewHandler(campaignSvc).RegisterRoutes(api)
	wizard.NewHandler(wizardSvc).RegisterRoutes(api)

	// Uploads reject double submits. Generation is retried by hand with the same
	// body, so only an explicit X-Idempotence key guards it.
	upload.NewHandler(uploadSvc).RegisterRoutes(api.Group("", middleware.Idempotence(rc.Raw())))
	generate.NewHandler(generateSvc).RegisterRoutes(api.Group("", middleware.IdempotenceByHeader(rc.Raw())))
}

// GET /health
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok", "redis": "ok"}
	code := http.StatusOK
	if err := a.stores.Ping(ctx); err != nil {
		a.logger.Warn("health: database ping failed", zap.Error(err))
		status["database"], status["status"], code = "down", "degraded", http.StatusServiceUnavailable
	}
	if err := a.redis.Raw().Ping(ctx).Err(); err != nil {
		a.logger.Warn("health: redis ping failed", zap.Error(err))
		status["redis"], status["status"], code = "down", "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// GET /session
func (a *App) currentSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		response.Unauthorized(c)
		return
	}
	current, err := sess.CurrentProfileID(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"session_id": sess.ID, "current_profile_id": current})
}
