package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/features/auth"
	"github.com/xyz-asif/trackback/internal/features/items"
	"github.com/xyz-asif/trackback/internal/middleware"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	"github.com/xyz-asif/trackback/internal/pkg/ratelimit"
	"github.com/xyz-asif/trackback/internal/pkg/response"
)

// Deps are the storage-backed services the API is built on.
type Deps struct {
	Users    auth.Repository
	Items    items.Repository
	Uploader items.ImageUploader
	Log      *logger.Logger
}

// NewRouter builds the full HTTP surface. Background work started here
// (rate limiter cleanup) stops when ctx is done.
func NewRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logger.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log.Zap()))
	router.Use(middleware.CORS(cfg.FrontendURL, func() []string { return middleware.RouteMethods(router) }))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{
			"status":  "ok",
			"storage": cfg.StorageDriver,
			"time":    time.Now().Unix(),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	var authLimit gin.HandlerFunc
	if cfg.AuthRateLimit > 0 {
		limiter := ratelimit.New(cfg.AuthRateLimit, time.Minute)
		limiter.StartCleanup(ctx, 5*time.Minute)
		authLimit = ratelimit.Middleware(limiter)
	}

	api := router.Group("/api")
	auth.RegisterRoutes(api, auth.NewHandler(deps.Users, cfg.JWTSecret, cfg.JWTExpire, log), authLimit)
	items.RegisterRoutes(api, items.NewHandler(deps.Items, deps.Uploader, log), middleware.Auth(cfg.JWTSecret))

	return router
}
