package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/seispick/api/dashboard"
	"github.com/killallgit/seispick/api/event"
	"github.com/killallgit/seispick/api/health"
	"github.com/killallgit/seispick/api/random"
	"github.com/killallgit/seispick/api/types"
	"github.com/killallgit/seispick/api/version"
	"github.com/killallgit/seispick/api/waveform"
	_ "github.com/killallgit/seispick/docs/swagger"
	"github.com/killallgit/seispick/internal/services/cache"
	"github.com/killallgit/seispick/internal/services/events"
	"github.com/killallgit/seispick/internal/services/picks"
	"github.com/killallgit/seispick/internal/services/waveforms"
	"github.com/killallgit/seispick/pkg/config"
	"github.com/killallgit/seispick/pkg/metrics"
	"github.com/killallgit/seispick/web"
)

// RegisterRoutes registers all routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if deps == nil || deps.PickService == nil || deps.EventService == nil || deps.WaveformService == nil {
		return fmt.Errorf("services are not initialized")
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Monitoring.Enabled && deps.Metrics != nil {
		path := cfg.Monitoring.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(deps.Metrics.Handler()))
	}

	engine.StaticFS("/static", web.Static())

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// Review pages
	dashboard.RegisterRoutes(engine, deps)
	random.RegisterRoutes(engine, deps)
	waveform.RegisterRoutes(engine, deps, cfg.Waveform.Compress)

	// Pick submission is the only write path, so it gets the per-client limiter
	var saveMiddleware []gin.HandlerFunc
	if cfg.RateLimiting.Enabled {
		saveMiddleware = append(saveMiddleware,
			PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, cfg.RateLimiting.SaveRPS, cfg.RateLimiting.SaveBurst))
	}
	event.RegisterRoutes(engine, deps, saveMiddleware...)

	return nil
}

// initializeServices fills in any service the caller did not provide.
// The returned stop function releases background resources it started.
func initializeServices(deps *types.Dependencies, cfg *config.Config) (stop func(), err error) {
	stop = func() {}
	if cfg == nil {
		return stop, fmt.Errorf("config is nil")
	}

	if deps.Metrics == nil && cfg.Monitoring.Enabled {
		deps.Metrics = metrics.NewManager()
	}

	if deps.EventStore == nil {
		deps.EventStore = events.NewFileStore(cfg.Events.Dir)
	}

	needDB := deps.EventService == nil || deps.PickService == nil
	if needDB && (deps.DB == nil || deps.DB.DB == nil) {
		return stop, fmt.Errorf("database is required")
	}

	if deps.EventService == nil {
		deps.EventService = events.NewService(events.NewRepository(deps.DB.DB), deps.EventStore)
	}

	if deps.PickService == nil {
		repo := picks.NewRepository(deps.DB.DB, picks.WithCounterMode(picks.CounterMode(cfg.Picks.CounterMode)))
		deps.PickService = picks.NewService(repo, deps.EventStore, deps.Metrics)
	}

	if deps.WaveformService == nil {
		rate := cfg.Waveform.SampleRate
		if rate <= 0 {
			rate = waveforms.DefaultSampleRate
		}
		var opts []waveforms.Option
		if cfg.Waveform.CacheMB > 0 {
			c := cache.NewMemoryCache[*waveforms.XY](cfg.Waveform.CacheMB, (*waveforms.XY).Size)
			stop = c.Stop
			opts = append(opts, waveforms.WithCache(c, cfg.Waveform.CacheTTL))
		}
		svc, err := waveforms.NewService(deps.EventStore, rate, deps.Metrics, opts...)
		if err != nil {
			stop()
			return func() {}, err
		}
		deps.WaveformService = svc
	}

	return stop, nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendNotFound(c, "The requested endpoint was not found")
	}
}
