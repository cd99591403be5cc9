// Package httpapi exposes the planner over HTTP for the browser frontend.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ai-growth-planner/internal/app"
	"ai-growth-planner/internal/logger"
)

// NewRouter builds the gin engine with all API routes registered.
func NewRouter(application *app.App, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	h := &Handler{app: application, log: log}

	r.GET("/healthcheck", h.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/plan", h.GeneratePlan)
		api.GET("/plan", h.GetPlan)
		api.DELETE("/plan", h.DeletePlan)

		api.GET("/calendar", h.GetCalendar)
		api.POST("/checks/toggle", h.ToggleCheck)
		api.POST("/checks/reset", h.ResetChecks)

		api.GET("/export/plan", h.ExportPlan)
		api.GET("/export/calendar", h.ExportCalendar)

		api.POST("/clip", h.ClipURL)
	}

	return r
}

// Server wraps the gin engine.
type Server struct {
	Engine *gin.Engine
}

// NewServer creates a Server with the API routes registered.
func NewServer(application *app.App, log *logger.Logger) *Server {
	return &Server{Engine: NewRouter(application, log)}
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(address string) error {
	return s.Engine.Run(address)
}
