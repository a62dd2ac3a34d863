package handlers

import (
	_ "github.com/christophersalem/hebard-hot-tub/docs"
	"github.com/christophersalem/hebard-hot-tub/internal/logger"
	"github.com/christophersalem/hebard-hot-tub/internal/metrics"
	"github.com/christophersalem/hebard-hot-tub/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	rateLimitPerMinute int
	rateLimitBurst     int
}

// Option customizes a Handler.
type Option func(*Handler)

// WithRateLimit limits /exec per client IP. perMinute <= 0 disables it.
func WithRateLimit(perMinute, burst int) Option {
	return func(h *Handler) {
		h.rateLimitPerMinute = perMinute
		h.rateLimitBurst = burst
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.registerWebhookRoutes(router)

	return router
}

func (h *Handler) registerWebhookRoutes(r *gin.Engine) {
	chain := []gin.HandlerFunc{}
	if h.rateLimitPerMinute > 0 {
		chain = append(chain, rateLimitMiddleware(h.rateLimitPerMinute, h.rateLimitBurst))
	}
	chain = append(chain, h.recordEvent)

	// Same path the controller script already calls.
	r.GET("/exec", chain...)
}
