package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-intelligence/internal/adapter/repository"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/repository/testutil"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/matcher"
)

type stubAsker struct {
	answer string
	err    error
	got    string
}

func (s *stubAsker) Ask(_ context.Context, query string) (string, error) {
	s.got = query
	return s.answer, s.err
}

type failingMatcher struct{}

func (failingMatcher) Match(context.Context, string) (*entities.Project, error) {
	return nil, errors.New("db down")
}

func newInjector(db *gorm.DB, asker Asker) *Injector {
	projects := repository.NewProjectRepository(db)
	inj := NewInjector(
		matcher.NewMatcher(projects, nil, nil),
		projects,
		repository.NewMeetingRepository(db),
		repository.NewInsightRepository(db),
		asker,
		nil,
	)
	inj.now = func() time.Time { return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) }
	return inj
}

func seedGoodwill(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedProject(t, db, entities.Project{
		ID: "gw", Name: "Goodwill", ClientID: "acme", EstimatedValue: 50000, ActualCost: 12500.5,
	})
	testutil.SeedTask(t, db, entities.Task{ID: "t1", ProjectID: "gw", Status: "done"})
	testutil.SeedTask(t, db, entities.Task{ID: "t2", ProjectID: "gw", Status: "todo"})

	pid := "gw"
	date := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)
	in := &entities.Insight{Summary: "weekly", Insights: []entities.ExtractedInsight{
		{Type: entities.InsightTypeBlocker, Title: "Waiting on API keys", RequiresAction: true},
		{Type: entities.InsightTypeOpportunity, Title: "Upsell analytics", RequiresAction: false},
	}}
	var rows []*entities.ProjectInsight
	for i, ex := range in.Insights {
		rows = append(rows, entities.NewProjectInsight(pid, "m1", i, ex, date))
	}
	meeting := entities.NewMeeting(entities.Transcript{ID: "m1", Title: "Goodwill Weekly Sync", Date: date}, in, &pid)
	if err := repository.NewMeetingRepository(db).UpsertWithInsights(context.Background(), meeting, rows); err != nil {
		t.Fatalf("seed meeting: %v", err)
	}
}

func TestInject_PrependsProjectContext(t *testing.T) {
	db := testutil.NewDB(t)
	seedGoodwill(t, db)

	query, pc := newInjector(db, nil).Inject(context.Background(), "What's the status of Goodwill?")
	if pc == nil || pc.ProjectName != "Goodwill" {
		t.Fatalf("expected Goodwill context, got %+v", pc)
	}

	want := "[PROJECT CONTEXT]\n" +
		"Project: Goodwill\n" +
		"Status: active\n" +
		"Client: acme\n" +
		"Recent meetings: 1\n" +
		"Tasks completed: 1/2\n" +
		"Budget: $12500.50 spent of $50000.00\n" +
		"Open insights:\n" +
		"- [blocker] Waiting on API keys\n" +
		"[/PROJECT CONTEXT]\n" +
		"\n" +
		"What's the status of Goodwill?"
	if diff := cmp.Diff(want, query); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestInject_NoMatchLeavesQueryUnchanged(t *testing.T) {
	db := testutil.NewDB(t)
	seedGoodwill(t, db)

	query, pc := newInjector(db, nil).Inject(context.Background(), "How do I reset my password?")
	if pc != nil || query != "How do I reset my password?" {
		t.Fatalf("expected passthrough, got %q %+v", query, pc)
	}
}

func TestInject_MatcherErrorLeavesQueryUnchanged(t *testing.T) {
	inj := &Injector{matcher: failingMatcher{}, now: time.Now}
	query, pc := inj.Inject(context.Background(), "Goodwill?")
	if pc != nil || query != "Goodwill?" {
		t.Fatalf("expected passthrough, got %q %+v", query, pc)
	}
}

func TestChat_ForwardsEnhancedQuery(t *testing.T) {
	db := testutil.NewDB(t)
	seedGoodwill(t, db)

	asker := &stubAsker{answer: "On track."}
	res := newInjector(db, asker).Chat(context.Background(), "Goodwill budget?")
	if res.Response != "On track." {
		t.Fatalf("unexpected response %q", res.Response)
	}
	if res.ProjectContext == nil || res.ProjectContext.ProjectID != "gw" {
		t.Fatalf("expected project context, got %+v", res.ProjectContext)
	}
	if len(asker.got) == 0 || asker.got[:len("[PROJECT CONTEXT]")] != "[PROJECT CONTEXT]" {
		t.Fatalf("asker did not receive the enhanced query: %q", asker.got)
	}
}

func TestChat_AnswerFailureDegrades(t *testing.T) {
	db := testutil.NewDB(t)

	res := newInjector(db, &stubAsker{err: errors.New("502")}).Chat(context.Background(), "hello")
	if res.Response != FallbackResponse || res.ProjectContext != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}
