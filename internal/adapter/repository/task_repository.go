package repository

import (
	"context"

	"gorm.io/gorm"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository backed by GORM
func NewTaskRepository(db *gorm.DB) repo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) BreakdownByStatus(ctx context.Context, projectID string) ([]entities.TaskStatusBreakdown, error) {
	rows := []entities.TaskStatusBreakdown{}
	if err := r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(estimated_hours), 0) AS estimated_hours, COALESCE(SUM(actual_hours), 0) AS actual_hours").
		Where("project_id = ?", projectID).
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed("task_breakdown", err)
	}
	return rows, nil
}
