// Package meeting persists enriched meetings and their project insights.
package meeting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
	"github.com/johnquangdev/meeting-intelligence/pkg/jobcontext"
)

// Recorder writes one meeting row per transcript plus its project insights
type Recorder struct {
	meetings repositories.MeetingRepository
	now      func() time.Time
	logger   *zap.Logger
}

// NewRecorder creates a Recorder
func NewRecorder(meetings repositories.MeetingRepository, logger *zap.Logger) *Recorder {
	return &Recorder{
		meetings: meetings,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// Record upserts the meeting keyed by the transcript id. Insights are written
// only when the meeting was associated with a project; both writes share a
// transaction.
func (r *Recorder) Record(ctx context.Context, t entities.Transcript, insight *entities.Insight, projectID *string) error {
	if t.ID == "" {
		return entities.ErrEmptyTranscriptID
	}
	if insight == nil {
		insight = entities.FallbackInsight(t.Title)
	}
	if projectID != nil && *projectID == "" {
		projectID = nil
	}

	meeting := entities.NewMeeting(t, insight, projectID)

	var rows []*entities.ProjectInsight
	if projectID != nil {
		now := r.now()
		rows = make([]*entities.ProjectInsight, 0, len(insight.Insights))
		for i, in := range insight.Insights {
			rows = append(rows, entities.NewProjectInsight(*projectID, t.ID, i, in, now))
		}
	}

	if err := r.meetings.UpsertWithInsights(ctx, meeting, rows); err != nil {
		if r.logger != nil {
			r.logger.Error("❌ Failed to record meeting", append(jobcontext.LogFields(ctx), zap.Error(err))...)
		}
		return err
	}

	if r.logger != nil {
		r.logger.Info("💾 Meeting recorded", append(jobcontext.LogFields(ctx),
			zap.String("meeting_id", t.ID),
			zap.Bool("has_project", projectID != nil),
			zap.Int("insights", len(rows)),
		)...)
	}
	return nil
}
