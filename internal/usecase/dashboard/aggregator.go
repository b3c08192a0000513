// Package dashboard aggregates persisted meeting intelligence per project.
package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

const (
	recentInsightLimit = 10
	recentMeetingLimit = 5
	recentMeetingDays  = 30
	summaryKeyPrefix   = "dashboard-summary:"
)

// Summarizer writes an executive summary; it never fails
type Summarizer interface {
	Summarize(ctx context.Context, view *entities.DashboardView) string
}

// SummaryCache stores generated summaries. A miss is ok=false with a nil error.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// PortfolioSummary aggregates a project listing
type PortfolioSummary struct {
	Total      int     `json:"total"`
	OnTrack    int     `json:"onTrack"`
	AtRisk     int     `json:"atRisk"`
	Overdue    int     `json:"overdue"`
	TotalValue float64 `json:"totalValue"`
}

// ProjectList is a filtered project listing with its summary
type ProjectList struct {
	Projects []*entities.Project `json:"projects"`
	Summary  PortfolioSummary    `json:"summary"`
}

// Aggregator builds dashboards and project listings
type Aggregator struct {
	projects   repositories.ProjectRepository
	insights   repositories.InsightRepository
	meetings   repositories.MeetingRepository
	tasks      repositories.TaskRepository
	summarizer Summarizer
	cache      SummaryCache
	summaryTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewAggregator creates an Aggregator. cache may be nil, which disables
// summary caching.
func NewAggregator(
	projects repositories.ProjectRepository,
	insights repositories.InsightRepository,
	meetings repositories.MeetingRepository,
	tasks repositories.TaskRepository,
	summarizer Summarizer,
	cache SummaryCache,
	summaryTTL time.Duration,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		projects:   projects,
		insights:   insights,
		meetings:   meetings,
		tasks:      tasks,
		summarizer: summarizer,
		cache:      cache,
		summaryTTL: summaryTTL,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// Dashboard assembles the view of one project. An unknown project yields
// errors.ErrProjectNotFound.
func (a *Aggregator) Dashboard(ctx context.Context, projectID string) (*entities.DashboardView, error) {
	if projectID == "" {
		return nil, appErrors.ErrInvalidArgument("projectId is required")
	}

	row, err := a.projects.Dashboard(ctx, projectID)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return nil, appErrors.ErrProjectNotFound(projectID)
		}
		return nil, err
	}

	insights, err := a.insights.ListRecent(ctx, projectID, recentInsightLimit)
	if err != nil {
		return nil, err
	}

	since := a.now().AddDate(0, 0, -recentMeetingDays)
	meetings, err := a.meetings.ListRecentByProject(ctx, projectID, since, recentMeetingLimit)
	if err != nil {
		return nil, err
	}

	breakdown, err := a.tasks.BreakdownByStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}

	view := &entities.DashboardView{
		Project:        row,
		Insights:       insights,
		RecentMeetings: make([]entities.MeetingDigest, 0, len(meetings)),
		TaskBreakdown:  breakdown,
	}
	if view.Insights == nil {
		view.Insights = []*entities.ProjectInsight{}
	}
	if view.TaskBreakdown == nil {
		view.TaskBreakdown = []entities.TaskStatusBreakdown{}
	}
	for _, m := range meetings {
		view.RecentMeetings = append(view.RecentMeetings, entities.NewMeetingDigest(m))
	}

	view.ExecutiveSummary = a.executiveSummary(ctx, view)
	return view, nil
}

// executiveSummary serves the summary from cache when possible. Cache errors
// are logged and otherwise ignored; fallback text is never cached.
func (a *Aggregator) executiveSummary(ctx context.Context, view *entities.DashboardView) string {
	key := summaryKeyPrefix + view.Project.ID
	fallback := entities.ExecutiveSummaryFallback(view.Project.Name)

	if a.cache != nil {
		cached, ok, err := a.cache.Get(ctx, key)
		switch {
		case err != nil:
			if a.logger != nil {
				a.logger.Warn("⚠️ Summary cache read failed", zap.String("project_id", view.Project.ID), zap.Error(err))
			}
		case ok && cached != "":
			return cached
		}
	}

	if a.summarizer == nil {
		return fallback
	}
	summary := a.summarizer.Summarize(ctx, view)
	if summary == "" {
		return fallback
	}

	if a.cache != nil && summary != fallback {
		if err := a.cache.Set(ctx, key, summary, a.summaryTTL); err != nil && a.logger != nil {
			a.logger.Warn("⚠️ Summary cache write failed", zap.String("project_id", view.Project.ID), zap.Error(err))
		}
	}
	return summary
}

// ListProjects returns the projects matching filter plus portfolio totals
func (a *Aggregator) ListProjects(ctx context.Context, filter entities.ProjectFilter) (*ProjectList, error) {
	projects, err := a.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []*entities.Project{}
	}

	summary := PortfolioSummary{Total: len(projects)}
	for _, p := range projects {
		switch p.TimelineHealth {
		case entities.TimelineOnTrack:
			summary.OnTrack++
		case entities.TimelineAtRisk:
			summary.AtRisk++
		case entities.TimelineOverdue:
			summary.Overdue++
		}
		summary.TotalValue += p.EstimatedValue
	}

	return &ProjectList{Projects: projects, Summary: summary}, nil
}
