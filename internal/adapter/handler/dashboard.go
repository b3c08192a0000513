package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/internal/adapter/dto/intelligence"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/dashboard"
)

// DashboardService reads per-project aggregates
type DashboardService interface {
	Dashboard(ctx context.Context, projectID string) (*entities.DashboardView, error)
	ListProjects(ctx context.Context, filter entities.ProjectFilter) (*dashboard.ProjectList, error)
}

// Dashboard handles dashboard and project listing requests
type Dashboard struct {
	service DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, logger *zap.Logger) *Dashboard {
	return &Dashboard{service: service, logger: logger}
}

// GetDashboard handles GET /dashboard
// @Summary      Project dashboard
// @Description  Returns the project summary, recent insights and meetings, task breakdown and executive summary
// @Tags         Dashboard
// @Produce      json
// @Param        projectId  query     string  true  "Project ID"
// @Success      200        {object}  entities.DashboardView
// @Failure      400        {object}  common.ErrorResponse  "projectId missing"
// @Failure      404        {object}  common.ErrorResponse  "Project not found"
// @Router       /dashboard [get]
func (h *Dashboard) GetDashboard(c echo.Context) error {
	var req intelligence.DashboardRequest
	if err := bindAndValidate(c, &req, "projectId is required"); err != nil {
		return HandleError(h.logger, c, err)
	}

	view, err := h.service.Dashboard(c.Request().Context(), req.ProjectID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, view)
}

// ListProjects handles GET /projects
// @Summary      List projects
// @Description  Lists projects filtered by status and client, with portfolio totals
// @Tags         Dashboard
// @Produce      json
// @Param        status  query     string  false  "Project status"
// @Param        client  query     string  false  "Client ID"
// @Success      200     {object}  intelligence.ProjectListResponse
// @Router       /projects [get]
func (h *Dashboard) ListProjects(c echo.Context) error {
	var req intelligence.ListProjectsRequest
	if err := bindAndValidate(c, &req, "invalid project filter"); err != nil {
		return HandleError(h.logger, c, err)
	}

	list, err := h.service.ListProjects(c.Request().Context(), entities.ProjectFilter{
		Status:   req.Status,
		ClientID: req.Client,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProjectListResponse(list))
}
