package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/middleware"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

// RouterConfig carries everything the HTTP surface depends on
type RouterConfig struct {
	Env            string
	ServiceName    string
	AllowedOrigins []string
	Logger         logger.Logger
	Verifier       *middleware.TokenVerifier
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Idempotency    repository.IdempotencyRepository

	Observations *ObservationHandler
	Activities   *ActivityHandler
	Links        *LinkHandler
	Insights     *InsightsHandler
}

// NewRouter wires middleware and routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.SecurityHeaders(cfg.Env == "production"))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.Verifier))
	{
		v1.POST("/observations", cfg.Observations.CreateObservation)
		v1.GET("/observations", cfg.Observations.GetObservations)
		v1.DELETE("/observations/:id", cfg.Observations.DeleteObservation)

		v1.POST("/activities", cfg.Activities.CreateActivityResult)
		v1.GET("/activities", cfg.Activities.GetActivityResults)
		v1.DELETE("/activities/:id", cfg.Activities.DeleteActivityResult)

		v1.POST("/links", middleware.Idempotency(cfg.Idempotency), cfg.Links.CreateLink)
		v1.GET("/links", cfg.Links.GetLinks)

		v1.GET("/correlations", cfg.Insights.GetCorrelations)
		v1.GET("/analysis", cfg.Insights.GetAnalysis)

		v1.POST("/recommendations/generate", cfg.Insights.GenerateRecommendations)
		v1.GET("/recommendations", cfg.Insights.GetRecommendations)
		v1.PATCH("/recommendations/:id", cfg.Insights.UpdateRecommendation)

		v1.GET("/patterns", cfg.Insights.GetPatterns)
	}

	return router
}
