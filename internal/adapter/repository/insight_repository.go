package repository

import (
	"context"

	"gorm.io/gorm"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository backed by GORM
func NewInsightRepository(db *gorm.DB) repo.InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) ListRecent(ctx context.Context, projectID string, limit int) ([]*entities.ProjectInsight, error) {
	return r.list(ctx, "list_recent_insights", limit, "project_id = ?", projectID)
}

func (r *insightRepository) ListOpen(ctx context.Context, projectID string, limit int) ([]*entities.ProjectInsight, error) {
	return r.list(ctx, "list_open_insights", limit, "project_id = ? AND requires_action = ?", projectID, true)
}

func (r *insightRepository) CountBySourceMeeting(ctx context.Context, meetingID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ProjectInsight{}).
		Where("source_meeting_id = ?", meetingID).
		Count(&n).Error; err != nil {
		return 0, appErrors.ErrDBQueryFailed("count_insights", err)
	}
	return n, nil
}

func (r *insightRepository) list(ctx context.Context, query string, limit int, where string, args ...interface{}) ([]*entities.ProjectInsight, error) {
	insights := []*entities.ProjectInsight{}
	q := r.db.WithContext(ctx).Where(where, args...).Order("extracted_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&insights).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed(query, err)
	}
	return insights, nil
}
