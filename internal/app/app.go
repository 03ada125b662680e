package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brandhub/core/internal/config"
	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/modules/brand/autosave"
	"github.com/brandhub/core/internal/pkg/llm"
	"github.com/brandhub/core/internal/pkg/objectstore"
	pkgredis "github.com/brandhub/core/internal/pkg/redis"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/brandhub/core/internal/pkg/tracing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	logger   *zap.Logger
	stores   *Stores
	redis    *pkgredis.Client
	objects  objectstore.Store
	autosave *autosave.Debouncer
	tracing  tracing.Shutdown
}

// New initializes the application: tracing → stores → Redis → object storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}
	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.Tracing, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		stores.Close(ctx)
		return nil, fmt.Errorf("redis: %w", err)
	}

	objects, err := objectstore.New(ctx, cfg.Storage, cfg.UploadDir())
	if err != nil {
		stores.Close(ctx)
		_ = rc.Close()
		return nil, fmt.Errorf("object storage: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	app := &App{
		cfg:     cfg,
		router:  router,
		logger:  logger,
		stores:  stores,
		redis:   rc,
		objects: objects,
		tracing: shutdownTracing,
	}
	app.registerRoutes(session.NewManager(rc, session.DefaultTTL))
	return app, nil
}

// llmClient builds the client for one model assignment. A missing provider is
// not fatal: the endpoints that need it answer 502 until one is configured.
func (a *App) llmClient(name string, assignment *config.AIModelAssignment) llm.Client {
	client, err := llm.NewFromConfig(a.cfg.AI, assignment)
	if err != nil {
		a.logger.Warn("AI client unavailable", zap.String("model", name), zap.Error(err))
		return nil
	}
	return client
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown flushes pending profile drafts, then closes stores and the tracer.
func (a *App) Shutdown(ctx context.Context) {
	if a.autosave != nil {
		a.autosave.Stop(ctx)
	}
	a.stores.Close(ctx)
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("redis close failed", zap.Error(err))
	}
	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.tracing(flushCtx); err != nil {
		a.logger.Warn("tracing shutdown failed", zap.Error(err))
	}
}
