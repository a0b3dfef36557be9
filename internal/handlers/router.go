package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alimgiray/persondir/internal/middleware"
	"github.com/alimgiray/persondir/internal/services"
)

// RouterConfig bundles what NewRouter wires into the engine
type RouterConfig struct {
	PersonService *services.PersonService
	MathService   *services.MathService
	DB            Pinger

	// Metrics is optional; when nil no metrics are recorded or exposed
	Metrics     *middleware.HTTPMetrics
	Gatherer    prometheus.Gatherer
	MetricsPath string
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}

	NewPersonHandler(cfg.PersonService).Register(router.Group("/api/person/v1"))
	NewMathHandler(cfg.MathService).Register(router)

	// Health check endpoint
	router.GET("/health", NewHealthHandler(cfg.DB).HealthCheck)

	if cfg.Metrics != nil && cfg.Gatherer != nil {
		router.GET(cfg.MetricsPath, gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	router.NoRoute(NewNotFoundHandler().NotFound)
	return router
}
