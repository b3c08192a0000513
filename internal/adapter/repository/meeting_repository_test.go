package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/johnquangdev/meeting-intelligence/internal/adapter/repository/testutil"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

func strPtr(s string) *string { return &s }

func sampleTranscript(id string, date time.Time) entities.Transcript {
	return entities.Transcript{
		ID:              id,
		Title:           "Goodwill weekly",
		Date:            date,
		DurationMinutes: 29.6,
		Participants:    []string{"ana@example.com", "bo@example.com"},
		Sentences: []entities.Sentence{
			{Speaker: "Ana", Text: "Kickoff", StartTime: 0},
		},
	}
}

func sampleInsight() *entities.Insight {
	return &entities.Insight{
		Summary:     "Scope agreed",
		MeetingType: entities.MeetingTypeClient,
		ActionItems: []string{"Send SOW"},
		Decisions:   []string{"Go with phase 1"},
		Risks:       []entities.RiskFlag{{Title: "Budget", Severity: entities.SeverityHigh}},
		Insights: []entities.ExtractedInsight{
			{Type: entities.InsightTypeRisk, Title: "Budget creep", RequiresAction: true, Confidence: 0.8},
			{Type: entities.InsightTypeOpportunity, Title: "Phase 2", Confidence: 0.5},
		},
		FollowUpRequired: true,
	}
}

func insightRows(projectID, meetingID string, in *entities.Insight, now time.Time) []*entities.ProjectInsight {
	rows := make([]*entities.ProjectInsight, 0, len(in.Insights))
	for i, ex := range in.Insights {
		rows = append(rows, entities.NewProjectInsight(projectID, meetingID, i, ex, now))
	}
	return rows
}

func TestMeetingRepository_UpsertIsIdempotentOnMeetingRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	testutil.SeedProject(t, db, entities.Project{ID: "p1", Name: "Goodwill"})

	meetings := NewMeetingRepository(db)
	insights := NewInsightRepository(db)

	date := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	tr := sampleTranscript("t-1", date)
	in := sampleInsight()

	for i := 0; i < 2; i++ {
		m := entities.NewMeeting(tr, in, strPtr("p1"))
		if err := meetings.UpsertWithInsights(ctx, m, insightRows("p1", tr.ID, in, time.Now())); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	var count int64
	if err := db.Model(&entities.Meeting{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one meeting row, got %d", count)
	}

	// insights are append-only, so a re-sync doubles them
	n, err := insights.CountBySourceMeeting(ctx, "t-1")
	if err != nil {
		t.Fatalf("count insights: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 insight rows after two syncs, got %d", n)
	}
}

func TestMeetingRepository_UpsertReplacesDerivedFields(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	meetings := NewMeetingRepository(db)

	date := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	tr := sampleTranscript("t-2", date)

	if err := meetings.UpsertWithInsights(ctx, entities.NewMeeting(tr, sampleInsight(), nil), nil); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	tr.Title = "Goodwill weekly (renamed)"
	if err := meetings.UpsertWithInsights(ctx, entities.NewMeeting(tr, nil, nil), nil); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := meetings.FindByID(ctx, "t-2")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != "Goodwill weekly (renamed)" || got.Summary != "Goodwill weekly (renamed)" {
		t.Fatalf("derived fields not replaced: title=%q summary=%q", got.Title, got.Summary)
	}
	if got.MeetingType != entities.MeetingTypeProject {
		t.Fatalf("expected fallback meeting type, got %q", got.MeetingType)
	}
	if diff := cmp.Diff([]string{}, got.ActionItemList()); diff != "" {
		t.Fatalf("action items (-want +got):\n%s", diff)
	}
	if got.Duration != 30 {
		t.Fatalf("expected rounded duration 30, got %d", got.Duration)
	}
}

func TestMeetingRepository_UpsertRejectsEmptyID(t *testing.T) {
	db := testutil.NewDB(t)
	err := NewMeetingRepository(db).UpsertWithInsights(context.Background(), &entities.Meeting{}, nil)
	if !errors.Is(err, entities.ErrEmptyTranscriptID) {
		t.Fatalf("expected ErrEmptyTranscriptID, got %v", err)
	}
}

func TestMeetingRepository_FindByIDMissing(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := NewMeetingRepository(db).FindByID(context.Background(), "nope")
	if !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestMeetingRepository_ListRecentByProject(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	meetings := NewMeetingRepository(db)

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, age := range []int{1, 5, 10, 45} {
		tr := sampleTranscript("t-"+string(rune('a'+i)), now.AddDate(0, 0, -age))
		if err := meetings.UpsertWithInsights(ctx, entities.NewMeeting(tr, nil, strPtr("p1")), nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	other := sampleTranscript("t-other", now)
	if err := meetings.UpsertWithInsights(ctx, entities.NewMeeting(other, nil, strPtr("p2")), nil); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	since := now.AddDate(0, 0, -30)
	got, err := meetings.ListRecentByProject(ctx, "p1", since, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	if diff := cmp.Diff([]string{"t-a", "t-b"}, ids); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}

	n, err := meetings.CountSince(ctx, "p1", since)
	if err != nil {
		t.Fatalf("count since: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 meetings in window, got %d", n)
	}
}
