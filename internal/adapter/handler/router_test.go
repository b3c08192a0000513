package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/dto/intelligence"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/chat"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/dashboard"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

type fakeSync struct{ result ingest.SyncResult }

func (f fakeSync) RunSync(context.Context) ingest.SyncResult { return f.result }

type fakeDashboard struct {
	filter entities.ProjectFilter
}

func (f *fakeDashboard) Dashboard(_ context.Context, id string) (*entities.DashboardView, error) {
	if id != "gw" {
		return nil, appErrors.ErrProjectNotFound(id)
	}
	return &entities.DashboardView{
		Project:          &entities.ProjectDashboard{ID: "gw", Name: "Goodwill"},
		Insights:         []*entities.ProjectInsight{},
		RecentMeetings:   []entities.MeetingDigest{},
		TaskBreakdown:    []entities.TaskStatusBreakdown{},
		ExecutiveSummary: "Executive summary unavailable for Goodwill.",
	}, nil
}

func (f *fakeDashboard) ListProjects(_ context.Context, filter entities.ProjectFilter) (*dashboard.ProjectList, error) {
	f.filter = filter
	return &dashboard.ProjectList{
		Projects: []*entities.Project{{ID: "gw", Name: "Goodwill", EstimatedValue: 10}},
		Summary:  dashboard.PortfolioSummary{Total: 1, OnTrack: 1, TotalValue: 10},
	}, nil
}

type fakeChat struct{ got string }

func (f *fakeChat) Chat(_ context.Context, message string) chat.ChatResult {
	f.got = message
	return chat.ChatResult{Response: "answer", ProjectContext: &chat.ProjectContext{ProjectName: "Goodwill"}}
}

type fakeDocs struct{ err error }

func (f fakeDocs) ListDocuments(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"meetings/t1.md"}, nil
}

type fixture struct {
	e    *echo.Echo
	dash *fakeDashboard
	chat *fakeChat
}

func newServer(sync ingest.SyncResult, docsErr error) *fixture {
	f := &fixture{e: echo.New(), dash: &fakeDashboard{}, chat: &fakeChat{}}
	rt := NewRouter(
		&config.Config{Server: config.ServerConfig{Environment: "test"}},
		NewSyncHandler(fakeSync{result: sync}, nil),
		NewDashboardHandler(f.dash, nil),
		NewChatHandler(f.chat, nil),
		NewDocumentsHandler(fakeDocs{err: docsErr}, nil),
	)
	rt.Setup(f.e)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	rec := newServer(ingest.SyncResult{}, nil).do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || decode(t, rec)["environment"] != "test" {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestSync_AlwaysOK(t *testing.T) {
	rec := newServer(ingest.SyncResult{Count: 2, Message: "Successfully synced 2 of 3 meetings",
		Results: []ingest.ItemResult{{TranscriptID: "t3", Error: "boom"}}}, nil).do(http.MethodPost, "/v1/sync", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := map[string]interface{}{"count": float64(2), "message": "Successfully synced 2 of 3 meetings"}
	if diff := cmp.Diff(want, decode(t, rec)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	rec = newServer(ingest.SyncResult{Error: "Failed to sync meetings", Details: "FIREFLIES_API_KEY is not configured"}, nil).
		do(http.MethodPost, "/v1/sync", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on failure, got %d", rec.Code)
	}
	want = map[string]interface{}{"count": float64(0), "error": "Failed to sync meetings", "details": "FIREFLIES_API_KEY is not configured"}
	if diff := cmp.Diff(want, decode(t, rec)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_StatusCodes(t *testing.T) {
	srv := newServer(ingest.SyncResult{}, nil)

	rec := srv.do(http.MethodGet, "/v1/dashboard?projectId=gw", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	for _, key := range []string{"project", "insights", "recentMeetings", "taskBreakdown", "executiveSummary"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing %q in %s", key, rec.Body.String())
		}
	}
	if got, ok := body["insights"].([]interface{}); !ok || len(got) != 0 {
		t.Fatalf("insights must be an empty list, got %v", body["insights"])
	}

	rec = srv.do(http.MethodGet, "/v1/dashboard?projectId=ghost", "")
	if rec.Code != http.StatusNotFound || decode(t, rec)["error"] != "Project not found" {
		t.Fatalf("expected 404, got %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(http.MethodGet, "/v1/dashboard", "")
	if rec.Code != http.StatusBadRequest || decode(t, rec)["error"] != "projectId is required" {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestListProjects_PassesFilters(t *testing.T) {
	srv := newServer(ingest.SyncResult{}, nil)

	rec := srv.do(http.MethodGet, "/v1/projects?status=active&client=acme", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if diff := cmp.Diff(entities.ProjectFilter{Status: "active", ClientID: "acme"}, srv.dash.filter); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	var got intelligence.ProjectListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Projects) != 1 || got.Summary.Total != 1 || got.Summary.TotalValue != 10 {
		t.Fatalf("unexpected listing %+v", got)
	}
}

func TestChat(t *testing.T) {
	srv := newServer(ingest.SyncResult{}, nil)

	rec := srv.do(http.MethodPost, "/v1/chat", `{"message":"  What's the status of Goodwill? "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if srv.chat.got != "What's the status of Goodwill?" {
		t.Fatalf("message not trimmed: %q", srv.chat.got)
	}
	body := decode(t, rec)
	pc, _ := body["projectContext"].(map[string]interface{})
	if body["response"] != "answer" || pc["projectName"] != "Goodwill" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	for _, payload := range []string{`{}`, `{"message":"   "}`} {
		rec = srv.do(http.MethodPost, "/v1/chat", payload)
		if rec.Code != http.StatusBadRequest || decode(t, rec)["error"] != "message is required" {
			t.Fatalf("expected 400 for %s, got %d %s", payload, rec.Code, rec.Body.String())
		}
	}

	rec = srv.do(http.MethodPost, "/v1/chat", `{"message":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestDocuments(t *testing.T) {
	rec := newServer(ingest.SyncResult{}, nil).do(http.MethodGet, "/v1/documents", "")
	if rec.Code != http.StatusOK || decode(t, rec)["count"] != float64(1) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = newServer(ingest.SyncResult{}, errors.New("bucket gone")).do(http.MethodGet, "/v1/documents", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
