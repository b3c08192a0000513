package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings and the
// insights extracted from them
type MeetingRepository interface {
	// UpsertWithInsights replaces the meeting row keyed by its transcript id and
	// appends the given insights, atomically
	UpsertWithInsights(ctx context.Context, meeting *entities.Meeting, insights []*entities.ProjectInsight) error

	// FindByID retrieves a meeting by its transcript id
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)

	// ListRecentByProject returns meetings dated at or after since, newest first
	ListRecentByProject(ctx context.Context, projectID string, since time.Time, limit int) ([]*entities.Meeting, error)

	// CountSince counts a project's meetings dated at or after since
	CountSince(ctx context.Context, projectID string, since time.Time) (int64, error)
}
