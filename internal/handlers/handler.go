package handlers

import (
	"time"

	_ "kasa_bridge/docs"
	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/metrics"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// StatusFunc reports the current bridge status.
type StatusFunc func() models.Status

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	status   StatusFunc
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
// A nil status func reports an empty status.
func NewHandler(services *service.Service, status StatusFunc, log *logger.Logger) *Handler {
	if status == nil {
		status = func() models.Status { return models.Status{GeneratedAt: time.Now().UTC()} }
	}
	return &Handler{services: services, status: status, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// browsers cannot set headers on an upgrade, so ?token= is accepted too
	router.GET("/ws", h.adminMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.adminMiddleware)
	{
		h.registerLightRoutes(api)
		api.GET("/events", h.getEvents)
		api.GET("/status", h.getStatus)
	}
}

func (h *Handler) registerLightRoutes(api *gin.RouterGroup) {
	light := api.Group("/light")
	{
		light.POST("/on", h.turnOn)
		light.POST("/off", h.turnOff)
		// Body example: {"minutes":30}
		light.POST("/timed", h.turnOnTimed)
		// Body example: {"enabled":true,"minutes":45}
		light.POST("/auto-off", h.setAutoOff)
	}
}
