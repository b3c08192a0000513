// Package chat enriches assistant queries with the context of the project
// they mention.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

const (
	openInsightLimit  = 3
	recentMeetingDays = 30

	// FallbackResponse is returned when the answer service cannot be reached
	FallbackResponse = "Sorry, I couldn't answer that right now. Please try again in a moment."
)

// ProjectMatcher resolves a query to at most one project
type ProjectMatcher interface {
	Match(ctx context.Context, text string) (*entities.Project, error)
}

// Asker answers a free-text question
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// OpenInsight is the short form of an insight that still requires action
type OpenInsight struct {
	Type  entities.InsightType `json:"type"`
	Title string               `json:"title"`
}

// ProjectContext is the project summary attached to a chat query
type ProjectContext struct {
	ProjectID      string                 `json:"projectId"`
	ProjectName    string                 `json:"projectName"`
	Status         entities.ProjectStatus `json:"status"`
	Client         string                 `json:"client"`
	RecentMeetings int64                  `json:"recentMeetings"`
	TasksCompleted int64                  `json:"tasksCompleted"`
	TasksTotal     int64                  `json:"tasksTotal"`
	ActualCost     float64                `json:"actualCost"`
	EstimatedValue float64                `json:"estimatedValue"`
	OpenInsights   []OpenInsight          `json:"openInsights"`
}

// ChatResult is the answer to one chat message
type ChatResult struct {
	Response       string          `json:"response"`
	ProjectContext *ProjectContext `json:"projectContext"`
}

// Injector prepends project context to chat queries
type Injector struct {
	matcher  ProjectMatcher
	projects repositories.ProjectRepository
	meetings repositories.MeetingRepository
	insights repositories.InsightRepository
	asker    Asker
	now      func() time.Time
	logger   *zap.Logger
}

// NewInjector creates an Injector
func NewInjector(
	matcher ProjectMatcher,
	projects repositories.ProjectRepository,
	meetings repositories.MeetingRepository,
	insights repositories.InsightRepository,
	asker Asker,
	logger *zap.Logger,
) *Injector {
	return &Injector{
		matcher:  matcher,
		projects: projects,
		meetings: meetings,
		insights: insights,
		asker:    asker,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// Inject returns the query to forward and the project context, if any. Lookup
// failures are logged and leave the query unchanged.
func (i *Injector) Inject(ctx context.Context, query string) (string, *ProjectContext) {
	project, err := i.matcher.Match(ctx, query)
	if err != nil {
		if i.logger != nil {
			i.logger.Warn("⚠️ Project match failed for chat query", zap.Error(err))
		}
		return query, nil
	}
	if project == nil {
		return query, nil
	}

	pc, err := i.projectContext(ctx, project.ID)
	if err != nil {
		if i.logger != nil {
			i.logger.Warn("⚠️ Failed to load project context",
				zap.String("project_id", project.ID),
				zap.Error(err),
			)
		}
		return query, nil
	}

	return FormatContext(pc) + "\n\n" + query, pc
}

func (i *Injector) projectContext(ctx context.Context, projectID string) (*ProjectContext, error) {
	row, err := i.projects.Dashboard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	recent, err := i.meetings.CountSince(ctx, projectID, i.now().AddDate(0, 0, -recentMeetingDays))
	if err != nil {
		return nil, err
	}

	open, err := i.insights.ListOpen(ctx, projectID, openInsightLimit)
	if err != nil {
		return nil, err
	}

	pc := &ProjectContext{
		ProjectID:      row.ID,
		ProjectName:    row.Name,
		Status:         row.Status,
		Client:         row.ClientID,
		RecentMeetings: recent,
		TasksCompleted: row.CompletedTasks,
		TasksTotal:     row.TotalTasks,
		ActualCost:     row.ActualCost,
		EstimatedValue: row.EstimatedValue,
		OpenInsights:   make([]OpenInsight, 0, len(open)),
	}
	for _, in := range open {
		pc.OpenInsights = append(pc.OpenInsights, OpenInsight{Type: in.InsightType, Title: in.Title})
	}
	return pc, nil
}

// FormatContext renders the fixed-shape context block
func FormatContext(pc *ProjectContext) string {
	var b strings.Builder
	b.WriteString("[PROJECT CONTEXT]\n")
	fmt.Fprintf(&b, "Project: %s\n", pc.ProjectName)
	fmt.Fprintf(&b, "Status: %s\n", pc.Status)
	fmt.Fprintf(&b, "Client: %s\n", pc.Client)
	fmt.Fprintf(&b, "Recent meetings: %d\n", pc.RecentMeetings)
	fmt.Fprintf(&b, "Tasks completed: %d/%d\n", pc.TasksCompleted, pc.TasksTotal)
	fmt.Fprintf(&b, "Budget: $%.2f spent of $%.2f\n", pc.ActualCost, pc.EstimatedValue)
	b.WriteString("Open insights:\n")
	for _, in := range pc.OpenInsights {
		fmt.Fprintf(&b, "- [%s] %s\n", in.Type, in.Title)
	}
	b.WriteString("[/PROJECT CONTEXT]")
	return b.String()
}

// Chat answers message through the search-and-answer service. Answer failures
// degrade to FallbackResponse; the project context is still returned.
func (i *Injector) Chat(ctx context.Context, message string) ChatResult {
	query, pc := i.Inject(ctx, message)
	result := ChatResult{Response: FallbackResponse, ProjectContext: pc}

	if i.asker == nil {
		return result
	}
	answer, err := i.asker.Ask(ctx, query)
	if err != nil {
		if i.logger != nil {
			i.logger.Error("❌ Chat answer failed", zap.Error(err))
		}
		return result
	}
	if strings.TrimSpace(answer) != "" {
		result.Response = answer
	}
	return result
}
