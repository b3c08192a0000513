package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gorm.io/gorm"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/repository"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/repository/testutil"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/cache"
)

type countingSummarizer struct {
	out   string
	calls int
}

func (c *countingSummarizer) Summarize(_ context.Context, view *entities.DashboardView) string {
	c.calls++
	if c.out == "" {
		return entities.ExecutiveSummaryFallback(view.Project.Name)
	}
	return c.out
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("redis down")
}

func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("redis down")
}

func newAggregator(db *gorm.DB, s Summarizer, c SummaryCache) *Aggregator {
	a := NewAggregator(
		repository.NewProjectRepository(db),
		repository.NewInsightRepository(db),
		repository.NewMeetingRepository(db),
		repository.NewTaskRepository(db),
		s, c, time.Minute, nil,
	)
	a.now = func() time.Time { return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) }
	return a
}

func ptr(s string) *string { return &s }

func seedMeeting(t *testing.T, db *gorm.DB, id string, date time.Time, projectID string, in *entities.Insight) {
	t.Helper()
	tr := entities.Transcript{ID: id, Title: "Meeting " + id, Date: date}
	var rows []*entities.ProjectInsight
	for i, ex := range in.Insights {
		rows = append(rows, entities.NewProjectInsight(projectID, id, i, ex, date))
	}
	if err := repository.NewMeetingRepository(db).UpsertWithInsights(context.Background(), entities.NewMeeting(tr, in, ptr(projectID)), rows); err != nil {
		t.Fatalf("seed meeting: %v", err)
	}
}

func TestDashboard_AssemblesView(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProject(t, db, entities.Project{ID: "p1", Name: "Goodwill", EstimatedValue: 1000})
	testutil.SeedTask(t, db, entities.Task{ID: "t1", ProjectID: "p1", Status: "done", EstimatedHours: 2, ActualHours: 3})

	in := &entities.Insight{
		Summary:     "Scope agreed",
		ActionItems: []string{"Send SOW"},
		Risks:       []entities.RiskFlag{{Title: "Budget", Severity: entities.SeverityHigh}},
		Insights: []entities.ExtractedInsight{
			{Type: entities.InsightTypeRisk, Title: "Budget creep", RequiresAction: true},
		},
	}
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i, age := range []int{1, 2, 3, 4, 5, 6} {
		seedMeeting(t, db, string(rune('a'+i)), base.AddDate(0, 0, -age), "p1", in)
	}
	seedMeeting(t, db, "old", base.AddDate(0, 0, -40), "p1", in)

	s := &countingSummarizer{out: "All good."}
	view, err := newAggregator(db, s, nil).Dashboard(context.Background(), "p1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if view.Project.Name != "Goodwill" || view.Project.MeetingCount != 7 {
		t.Fatalf("unexpected project row %+v", view.Project)
	}
	if len(view.Insights) != 7 {
		t.Fatalf("expected 7 insights, got %d", len(view.Insights))
	}
	if len(view.RecentMeetings) != 5 || view.RecentMeetings[0].ID != "a" {
		t.Fatalf("expected 5 newest meetings, got %+v", view.RecentMeetings)
	}
	if diff := cmp.Diff([]string{"Send SOW"}, view.RecentMeetings[0].ActionItems); diff != "" {
		t.Fatalf("action items not decoded (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]entities.TaskStatusBreakdown{{Status: "done", Count: 1, EstimatedHours: 2, ActualHours: 3}}, view.TaskBreakdown); diff != "" {
		t.Fatalf("breakdown (-want +got):\n%s", diff)
	}
	if view.ExecutiveSummary != "All good." {
		t.Fatalf("unexpected summary %q", view.ExecutiveSummary)
	}
}

func TestDashboard_EmptyProjectHasListsAndSummary(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProject(t, db, entities.Project{ID: "p1", Name: "Harbor"})

	view, err := newAggregator(db, &countingSummarizer{}, nil).Dashboard(context.Background(), "p1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if view.Insights == nil || view.RecentMeetings == nil || view.TaskBreakdown == nil {
		t.Fatalf("lists must be empty, not nil: %+v", view)
	}
	if view.ExecutiveSummary != "Executive summary unavailable for Harbor." {
		t.Fatalf("unexpected summary %q", view.ExecutiveSummary)
	}
}

func TestDashboard_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := newAggregator(db, nil, nil).Dashboard(context.Background(), "ghost")

	var appErr appErrors.AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected 404 app error, got %v", err)
	}

	_, err = newAggregator(db, nil, nil).Dashboard(context.Background(), "")
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty id, got %v", err)
	}
}

func TestDashboard_CachesSummary(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProject(t, db, entities.Project{ID: "p1", Name: "Goodwill"})

	store := cache.NewMemoryStore()
	defer store.Close()

	s := &countingSummarizer{out: "Cached summary."}
	a := newAggregator(db, s, store)
	for i := 0; i < 3; i++ {
		view, err := a.Dashboard(context.Background(), "p1")
		if err != nil {
			t.Fatalf("dashboard: %v", err)
		}
		if view.ExecutiveSummary != "Cached summary." {
			t.Fatalf("unexpected summary %q", view.ExecutiveSummary)
		}
	}
	if s.calls != 1 {
		t.Fatalf("expected summarizer to run once, ran %d times", s.calls)
	}
}

func TestDashboard_FallbackNotCachedAndCacheErrorsIgnored(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProject(t, db, entities.Project{ID: "p1", Name: "Goodwill"})

	store := cache.NewMemoryStore()
	defer store.Close()

	s := &countingSummarizer{}
	a := newAggregator(db, s, store)
	_, _ = a.Dashboard(context.Background(), "p1")
	_, _ = a.Dashboard(context.Background(), "p1")
	if s.calls != 2 {
		t.Fatalf("fallback must not be cached, summarizer ran %d times", s.calls)
	}

	broken := newAggregator(db, &countingSummarizer{out: "ok"}, brokenCache{})
	view, err := broken.Dashboard(context.Background(), "p1")
	if err != nil || view.ExecutiveSummary != "ok" {
		t.Fatalf("cache failure must not break the dashboard: %v %+v", err, view)
	}
}

func TestListProjects_Summary(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProject(t, db, entities.Project{ID: "a", Name: "A", ClientID: "c1", EstimatedValue: 100})
	testutil.SeedProject(t, db, entities.Project{ID: "b", Name: "B", ClientID: "c1", EstimatedValue: 250.5, TimelineHealth: entities.TimelineAtRisk})
	testutil.SeedProject(t, db, entities.Project{ID: "c", Name: "C", ClientID: "c1", EstimatedValue: 50, TimelineHealth: entities.TimelineOverdue})
	testutil.SeedProject(t, db, entities.Project{ID: "d", Name: "D", ClientID: "c2", EstimatedValue: 999})

	got, err := newAggregator(db, nil, nil).ListProjects(context.Background(), entities.ProjectFilter{ClientID: "c1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := PortfolioSummary{Total: 3, OnTrack: 1, AtRisk: 1, Overdue: 1, TotalValue: 400.5}
	if diff := cmp.Diff(want, got.Summary); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}

	empty, err := newAggregator(db, nil, nil).ListProjects(context.Background(), entities.ProjectFilter{Status: "closed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty.Projects == nil || empty.Summary.Total != 0 {
		t.Fatalf("expected empty, non-nil listing: %+v", empty)
	}
}
