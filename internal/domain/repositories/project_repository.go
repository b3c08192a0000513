package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

// ProjectRepository defines read access to projects and the dashboard view
type ProjectRepository interface {
	// FindByID retrieves a project; returns entities.ErrProjectNotFound when absent
	FindByID(ctx context.Context, id string) (*entities.Project, error)

	// FindByNameLike returns the most recently updated project whose name
	// contains keyword (case-insensitive), or nil when none does
	FindByNameLike(ctx context.Context, keyword string) (*entities.Project, error)

	// ListForMatching returns every project, most recently updated first
	ListForMatching(ctx context.Context) ([]*entities.Project, error)

	// List returns projects narrowed by filter
	List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, error)

	// Dashboard reads one row of the project_dashboard view; returns
	// entities.ErrProjectNotFound when absent
	Dashboard(ctx context.Context, id string) (*entities.ProjectDashboard, error)
}
