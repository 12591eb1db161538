package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventscript-team/eventscript/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	eventHandler    *Event
	pipelineHandler *Pipeline
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, eventHandler *Event, pipelineHandler *Pipeline) *Router {
	return &Router{
		cfg:             cfg,
		eventHandler:    eventHandler,
		pipelineHandler: pipelineHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupEventRoutes(v1)
	rt.setupPipelineRoutes(v1)
}

// setupEventRoutes configures event routes
func (rt *Router) setupEventRoutes(g *echo.Group) {
	events := g.Group("/events")
	events.POST("", rt.eventHandler.Create)
	events.GET("/:id", rt.eventHandler.Get)
}

// setupPipelineRoutes configures the generation workflow routes
func (rt *Router) setupPipelineRoutes(g *echo.Group) {
	events := g.Group("/events")

	events.POST("/:id/layout", rt.pipelineHandler.GenerateLayout)
	events.GET("/:id/layout", rt.pipelineHandler.GetLayout)
	events.POST("/:id/layout/segments", rt.pipelineHandler.AddSegment)
	events.PUT("/:id/layout/segments/:segmentId", rt.pipelineHandler.UpdateSegment)
	events.DELETE("/:id/layout/segments/:segmentId", rt.pipelineHandler.DeleteSegment)

	events.POST("/:id/script", rt.pipelineHandler.GenerateScript)
	events.GET("/:id/script", rt.pipelineHandler.GetScript)
	events.POST("/:id/script/chunks", rt.pipelineHandler.ChunkSegments)

	events.GET("/:id/timeline", rt.pipelineHandler.Timeline)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
