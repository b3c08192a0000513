package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

// TaskRepository defines aggregate reads over externally owned tasks
type TaskRepository interface {
	// BreakdownByStatus groups a project's tasks by status
	BreakdownByStatus(ctx context.Context, projectID string) ([]entities.TaskStatusBreakdown, error)
}
