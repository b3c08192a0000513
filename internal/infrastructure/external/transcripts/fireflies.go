// Package transcripts fetches recorded-meeting transcripts from third-party
// recorders and normalizes them into entities.Transcript.
package transcripts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

const recentTranscriptsQuery = `query RecentTranscripts($limit: Int) {
  transcripts(limit: $limit) {
    id
    title
    date
    duration
    participants
    sentences {
      speaker_name
      text
      start_time
    }
  }
}`

// FirefliesClient reads transcripts from a Fireflies-style GraphQL API
type FirefliesClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewFirefliesClient creates a GraphQL transcript client
func NewFirefliesClient(cfg *config.TranscriptsConfig, logger *zap.Logger) *FirefliesClient {
	return &FirefliesClient{
		apiKey:   cfg.FirefliesAPIKey,
		endpoint: cfg.FirefliesURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type firefliesSentence struct {
	SpeakerName string  `json:"speaker_name"`
	Text        string  `json:"text"`
	StartTime   float64 `json:"start_time"`
}

type firefliesTranscript struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Date         float64             `json:"date"` // epoch milliseconds
	Duration     float64             `json:"duration"`
	Participants []string            `json:"participants"`
	Sentences    []firefliesSentence `json:"sentences"`
}

type firefliesResponse struct {
	Data struct {
		Transcripts []firefliesTranscript `json:"transcripts"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Name identifies the source in logs
func (c *FirefliesClient) Name() string { return "fireflies" }

// FetchTranscripts returns up to limit of the most recent transcripts
func (c *FirefliesClient) FetchTranscripts(ctx context.Context, limit int) ([]entities.Transcript, error) {
	if c.apiKey == "" {
		return nil, appErrors.ErrConfigMissing("FIREFLIES_API_KEY")
	}

	b, err := json.Marshal(graphQLRequest{
		Query:     recentTranscriptsQuery,
		Variables: map[string]interface{}{"limit": limit},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, appErrors.ErrExternalAPIFailed("fireflies", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, appErrors.ErrExternalAPIFailed("fireflies",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var fr firefliesResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, appErrors.ErrExternalAPIFailed("fireflies", fmt.Errorf("decode response: %w", err))
	}
	if len(fr.Errors) > 0 {
		msgs := make([]string, 0, len(fr.Errors))
		for _, e := range fr.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, appErrors.ErrExternalAPIFailed("fireflies", fmt.Errorf("graphql error: %s", strings.Join(msgs, "; ")))
	}

	out := make([]entities.Transcript, 0, len(fr.Data.Transcripts))
	for _, t := range fr.Data.Transcripts {
		if t.ID == "" {
			if c.logger != nil {
				c.logger.Warn("⚠️ Skipping transcript without id", zap.String("title", t.Title))
			}
			continue
		}
		out = append(out, t.toEntity())
	}
	return out, nil
}

func (t firefliesTranscript) toEntity() entities.Transcript {
	sentences := make([]entities.Sentence, 0, len(t.Sentences))
	for _, s := range t.Sentences {
		sentences = append(sentences, entities.Sentence{
			Speaker:   s.SpeakerName,
			Text:      s.Text,
			StartTime: s.StartTime,
		})
	}
	participants := t.Participants
	if participants == nil {
		participants = []string{}
	}
	return entities.Transcript{
		ID:              t.ID,
		Title:           t.Title,
		Date:            time.UnixMilli(int64(t.Date)).UTC(),
		DurationMinutes: t.Duration,
		Participants:    participants,
		Sentences:       sentences,
	}
}
