// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, and rate limiting, and mounts the public articles API.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/auth"
	"github.com/ncnews/go-news-api/internal/config"
	"github.com/ncnews/go-news-api/internal/domain"
	"github.com/ncnews/go-news-api/internal/http/handlers"
	"github.com/ncnews/go-news-api/internal/http/httperr"
	"github.com/ncnews/go-news-api/internal/http/middleware"
	"github.com/ncnews/go-news-api/internal/repo"
	"github.com/ncnews/go-news-api/internal/services"
)

// articleRepoShim adapts the repository free functions to the
// services.ArticleRepo interface expected by the ArticleService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type articleRepoShim struct{}

// GetArticle proxies repo.GetArticle.
func (articleRepoShim) GetArticle(ctx context.Context, db *gorm.DB, rawID string) (*domain.Article, error) {
	return repo.GetArticle(ctx, db, rawID)
}

// ListArticles proxies repo.ListArticles.
func (articleRepoShim) ListArticles(ctx context.Context, db *gorm.DB, sortColumn string, descending bool) ([]domain.Article, error) {
	return repo.ListArticles(ctx, db, sortColumn, descending)
}

// RecentArticles proxies repo.RecentArticles.
func (articleRepoShim) RecentArticles(ctx context.Context, db *gorm.DB, limit int) ([]domain.Article, error) {
	return repo.RecentArticles(ctx, db, limit)
}

// InsertArticle proxies repo.InsertArticle.
func (articleRepoShim) InsertArticle(ctx context.Context, db *gorm.DB, title, body, author string) (*domain.Article, error) {
	return repo.InsertArticle(ctx, db, title, body, author)
}

// UpdateArticle proxies repo.UpdateArticle.
func (articleRepoShim) UpdateArticle(ctx context.Context, db *gorm.DB, rawID string, title, body *string) (*domain.Article, error) {
	return repo.UpdateArticle(ctx, db, rawID, title, body)
}

// DeleteArticle proxies repo.DeleteArticle.
func (articleRepoShim) DeleteArticle(ctx context.Context, db *gorm.DB, rawID string) error {
	return repo.DeleteArticle(ctx, db, rawID)
}

// topicRepoShim adapts the topic repository functions to services.TopicRepo.
type topicRepoShim struct{}

// ListTopics proxies repo.ListTopics.
func (topicRepoShim) ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error) {
	return repo.ListTopics(ctx, db)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public articles API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs with header redaction
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, verifier *auth.Verifier, cfg config.Config) {
	// Unknown methods fall through to NoRoute so clients always get the
	// same "Path not found!" body the API has always returned.
	r.HandleMethodNotAllowed = false

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallback for unknown paths (and unknown methods, see above)
	r.NoRoute(func(c *gin.Context) {
		httperr.Fail(c, http.StatusNotFound, "Path not found!")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	articleSvc := services.NewArticleService(db, articleRepoShim{})
	topicSvc := &services.TopicService{DB: db, Repo: topicRepoShim{}}
	h := handlers.New(articleSvc, topicSvc)

	requireToken := middleware.RequireToken(verifier)
	requireAuthor := middleware.RequireArticleAuthor(articleSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Articles
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/recent", h.RecentArticles)
		api.POST("/articles", requireToken, h.CreateArticle)
		api.GET("/articles/:article_id", h.GetArticle)
		api.PATCH("/articles/:article_id", requireToken, requireAuthor, h.UpdateArticle)
		api.DELETE("/articles/:article_id", requireToken, requireAuthor, h.DeleteArticle)

		// Topics
		api.GET("/topics", h.ListTopics)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
