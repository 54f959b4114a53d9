package v1

import (
	"net/http"

	"colchester-plumber-api/config"
	"colchester-plumber-api/internal/delivery/http/middleware"
	"colchester-plumber-api/internal/delivery/http/response"
	"colchester-plumber-api/internal/domain"
	"colchester-plumber-api/pkg/apperror"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

type RouterDeps struct {
	QuoteUC  domain.QuoteUsecase
	HealthUC domain.HealthUsecase
	Redis    *goredis.Client // nil: rate limiting stays in memory
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	// Unsupported verbs on known paths get 405 instead of 404.
	r.HandleMethodNotAllowed = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.NoMethod(func(c *gin.Context) {
		c.Error(apperror.MethodNotAllowed())
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found", "")
	})

	// Must run before any route is registered so every route is instrumented.
	if cfg.MetricsEnabled {
		p := ginprometheus.NewPrometheus("gin")
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if path := c.FullPath(); path != "" {
				return path
			}
			return "unmatched"
		}
		p.Use(r)
	}

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	quoteLimiter := middleware.RateLimitMiddleware(
		middleware.QuoteRateLimitConfig(cfg.RateLimitQuoteThreshold, cfg.RateLimitWindow()),
		deps.Redis,
	)
	NewQuoteHandler(api, deps.QuoteUC, quoteLimiter)

	// Swagger
	if cfg.SwaggerEnabled {
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
