package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

// meetingUpsertColumns are replaced when a transcript is synced again.
// created_at is deliberately absent so the first-seen time survives.
var meetingUpsertColumns = []string{
	"title",
	"date",
	"duration",
	"participants",
	"summary",
	"meeting_type",
	"project_id",
	"action_items",
	"decisions",
	"risk_flags",
	"follow_up_required",
	"updated_at",
}

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) UpsertWithInsights(ctx context.Context, meeting *entities.Meeting, insights []*entities.ProjectInsight) error {
	if meeting == nil || meeting.ID == "" {
		return entities.ErrEmptyTranscriptID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Upsert by transcript id
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(meetingUpsertColumns),
		}).Create(meeting).Error; err != nil {
			return appErrors.ErrDBQueryFailed("upsert_meeting", err)
		}

		if len(insights) == 0 {
			return nil
		}
		if err := tx.Create(insights).Error; err != nil {
			return appErrors.ErrDBQueryFailed("insert_project_insights", err)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	var appErr appErrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	// begin or commit failed
	return appErrors.ErrDBTransactionFailed(err)
}

func (r *meetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, appErrors.ErrDBQueryFailed("find_meeting", err)
	}
	return &meeting, nil
}

func (r *meetingRepository) ListRecentByProject(ctx context.Context, projectID string, since time.Time, limit int) ([]*entities.Meeting, error) {
	meetings := []*entities.Meeting{}
	q := r.db.WithContext(ctx).
		Where("project_id = ? AND date >= ?", projectID, since.UTC()).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&meetings).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed("list_recent_meetings", err)
	}
	return meetings, nil
}

func (r *meetingRepository) CountSince(ctx context.Context, projectID string, since time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("project_id = ? AND date >= ?", projectID, since.UTC()).
		Count(&n).Error; err != nil {
		return 0, appErrors.ErrDBQueryFailed("count_recent_meetings", err)
	}
	return n, nil
}
