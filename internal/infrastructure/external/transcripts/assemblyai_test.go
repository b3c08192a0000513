package transcripts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/go-cmp/cmp"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

func TestAssemblyAIClient_FetchTranscripts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/v2/transcript"):
			_, _ = w.Write([]byte(`{"page_details":{"limit":1,"result_count":1},"transcripts":[
				{"id":"aai-1","status":"completed","created":"2026-09-01T15:00:00.123456","audio_url":"https://cdn.example.com/a/goodwill-weekly_sync.mp3"}
			]}`))
		case strings.HasSuffix(r.URL.Path, "/v2/transcript/aai-1"):
			_, _ = w.Write([]byte(`{"id":"aai-1","status":"completed","audio_url":"https://cdn.example.com/a/goodwill-weekly_sync.mp3",
				"utterances":[
					{"speaker":"A","text":"Budget is tight","start":1500,"end":4000},
					{"speaker":"B","text":"Agreed","start":65000,"end":120000}
				]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewAssemblyAIClient(&config.TranscriptsConfig{AssemblyAPIKey: "key"}, nil, aai.WithBaseURL(srv.URL))
	got, err := c.FetchTranscripts(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := []entities.Transcript{{
		ID:              "aai-1",
		Title:           "goodwill weekly sync",
		Date:            time.Date(2026, 9, 1, 15, 0, 0, 123456000, time.UTC),
		DurationMinutes: 2,
		Participants:    []string{"Speaker A", "Speaker B"},
		Sentences: []entities.Sentence{
			{Speaker: "Speaker A", Text: "Budget is tight", StartTime: 1.5},
			{Speaker: "Speaker B", Text: "Agreed", StartTime: 65},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transcripts mismatch (-want +got):\n%s", diff)
	}
}

func TestTitleFromAudioURL(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.com/x/Harbor_Kickoff.m4a": "Harbor Kickoff",
		"https://cdn.example.com/":                     "fallback",
		"::not a url":                                  "fallback",
	}
	for in, want := range cases {
		if got := titleFromAudioURL(in, "fallback"); got != want {
			t.Errorf("titleFromAudioURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssemblyAIClient_SkipsTranscriptThatFailsToLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/v2/transcript"):
			_, _ = w.Write([]byte(`{"page_details":{"limit":2,"result_count":2},"transcripts":[
				{"id":"good","status":"completed","created":"2026-09-01T15:00:00"},
				{"id":"bad","status":"completed","created":"2026-09-01T16:00:00"}
			]}`))
		case strings.HasSuffix(r.URL.Path, "/v2/transcript/good"):
			_, _ = w.Write([]byte(`{"id":"good","status":"completed","utterances":[{"speaker":"A","text":"Hi","start":0,"end":60000}]}`))
		case strings.HasSuffix(r.URL.Path, "/v2/transcript/bad"):
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"transcript unavailable"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewAssemblyAIClient(&config.TranscriptsConfig{AssemblyAPIKey: "key"}, nil, aai.WithBaseURL(srv.URL))
	got, err := c.FetchTranscripts(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("got %+v, want only the good transcript", got)
	}
}

func TestAssemblyAIClient_ListFailureFailsBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	c := NewAssemblyAIClient(&config.TranscriptsConfig{AssemblyAPIKey: "key"}, nil, aai.WithBaseURL(srv.URL))
	if _, err := c.FetchTranscripts(context.Background(), 2); err == nil {
		t.Fatal("expected error when listing fails")
	}
}
