// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging with PII redaction, panic recovery,
// metrics, compression, CORS, security headers, rate limiting, and bearer
// auth for the admin endpoints.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/oguzcelik/jewelry-backend/internal/config"
	"github.com/oguzcelik/jewelry-backend/internal/http/handlers"
	"github.com/oguzcelik/jewelry-backend/internal/http/middleware"
	"github.com/oguzcelik/jewelry-backend/internal/services"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine, backed by the supplied storage backend.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. CORS and security headers
//
// The per-IP rate limiter applies to the public contact form only; the
// admin group adds bearer auth on top of the shared stack.
func RegisterRoutes(r *gin.Engine, store storage.Storage, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (contact form carries PII)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress JSON responses (the catalog list is the largest payload)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) CORS posture (allow all when no allowlist configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
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

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness and readiness
	r.GET("/health", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Dependency injection: services ← storage backend
	authSvc := services.NewAuthService(store, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	h := handlers.New(
		services.NewCatalogService(store),
		services.NewContentService(store),
		services.NewInboxService(store),
		services.NewRatesService(store),
		authSvc,
	)

	// Contact-form limiter, keyed per client IP.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())

	api := r.Group("/api")
	{
		// Public storefront
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/products/category/:category", h.ListProductsByCategory)
		api.GET("/contact-info", h.GetContactInfo)
		api.GET("/about-info", h.GetAboutInfo)
		api.GET("/homepage-info", h.GetHomepageInfo)
		api.GET("/exchange-rates", h.ListExchangeRates)
		api.GET("/exchange-rates/:currency", h.GetExchangeRate)
		api.POST("/messages", rl.Handler(), h.SubmitMessage)
		api.POST("/auth/login", h.Login)

		// Admin (bearer token)
		auth := middleware.RequireAuth(authSvc)
		api.GET("/products/all", auth, h.ListAllProducts)
		api.POST("/products", auth, h.CreateProduct)
		api.PUT("/products/:id", auth, h.UpdateProduct)
		api.DELETE("/products/:id", auth, h.DeleteProduct)
		api.PUT("/contact-info", auth, h.UpdateContactInfo)
		api.PUT("/about-info", auth, h.UpdateAboutInfo)
		api.PUT("/homepage-info", auth, h.UpdateHomepageInfo)
		api.GET("/messages", auth, h.ListMessages)
		api.PUT("/messages/:id/read", auth, h.UpdateMessageReadStatus)
		api.DELETE("/messages/:id", auth, h.DeleteMessage)
		api.PUT("/exchange-rates/:currency", auth, h.UpdateExchangeRate)
		api.GET("/auth/me", auth, h.Me)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; reads past the cap error downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
