package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

// InsightRepository defines read access to project insights. Inserts go
// through MeetingRepository so they share the meeting's transaction.
type InsightRepository interface {
	// ListRecent returns the newest insights for a project
	ListRecent(ctx context.Context, projectID string, limit int) ([]*entities.ProjectInsight, error)

	// ListOpen returns the newest insights that still require action
	ListOpen(ctx context.Context, projectID string, limit int) ([]*entities.ProjectInsight, error)

	// CountBySourceMeeting counts insights extracted from one meeting
	CountBySourceMeeting(ctx context.Context, meetingID string) (int64, error)
}
