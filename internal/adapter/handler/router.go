package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-intelligence/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
	"github.com/johnquangdev/meeting-intelligence/pkg/validator"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	syncHandler      *Sync
	dashboardHandler *Dashboard
	chatHandler      *Chat
	documentsHandler *Documents
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, syncHandler *Sync, dashboardHandler *Dashboard, chatHandler *Chat, documentsHandler *Documents) *Router {
	return &Router{
		cfg:              cfg,
		syncHandler:      syncHandler,
		dashboardHandler: dashboardHandler,
		chatHandler:      chatHandler,
		documentsHandler: documentsHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = validator.New()
	}

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	v1.POST("/sync", rt.syncHandler.TriggerSync)
	v1.GET("/dashboard", rt.dashboardHandler.GetDashboard)
	v1.GET("/projects", rt.dashboardHandler.ListProjects)
	v1.POST("/chat", rt.chatHandler.SendMessage)
	v1.GET("/documents", rt.documentsHandler.ListDocuments)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:      "ok",
		Environment: env,
	})
}
