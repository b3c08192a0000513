package transcripts

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

// AssemblyAIClient reads completed transcripts through the official SDK
type AssemblyAIClient struct {
	apiKey string
	client *aai.Client
	logger *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI transcript source. Extra options
// are passed to the SDK client (tests point it at a local server).
func NewAssemblyAIClient(cfg *config.TranscriptsConfig, logger *zap.Logger, opts ...aai.ClientOption) *AssemblyAIClient {
	return &AssemblyAIClient{
		apiKey: cfg.AssemblyAPIKey,
		client: aai.NewClientWithOptions(append([]aai.ClientOption{aai.WithAPIKey(cfg.AssemblyAPIKey)}, opts...)...),
		logger: logger,
	}
}

// Name identifies the source in logs
func (c *AssemblyAIClient) Name() string { return "assemblyai" }

// FetchTranscripts lists the most recent completed transcripts and loads each
// one with its utterances. A transcript that fails to load is skipped; only a
// failed listing fails the batch.
func (c *AssemblyAIClient) FetchTranscripts(ctx context.Context, limit int) ([]entities.Transcript, error) {
	if c.apiKey == "" {
		return nil, appErrors.ErrConfigMissing("ASSEMBLYAI_API_KEY")
	}

	list, err := c.client.Transcripts.List(ctx, aai.ListTranscriptParams{
		Limit:  aai.Int64(int64(limit)),
		Status: aai.TranscriptStatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("list assemblyai transcripts: %w", err)
	}

	out := make([]entities.Transcript, 0, len(list.Transcripts))
	for _, item := range list.Transcripts {
		id := aai.ToString(item.ID)
		if id == "" {
			continue
		}

		transcript, err := c.client.Transcripts.Get(ctx, id)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("⚠️ Skipping transcript that failed to load",
					zap.String("transcript_id", id),
					zap.Error(err),
				)
			}
			continue
		}
		if transcript.Status != aai.TranscriptStatusCompleted {
			if c.logger != nil {
				c.logger.Info("⏳ Skipping transcript that is not completed",
					zap.String("transcript_id", id),
					zap.String("status", string(transcript.Status)),
				)
			}
			continue
		}

		out = append(out, toTranscript(id, aai.ToString(item.Created), transcript))
	}
	return out, nil
}

func toTranscript(id, created string, t aai.Transcript) entities.Transcript {
	sentences := make([]entities.Sentence, 0, len(t.Utterances))
	participants := []string{}
	seen := map[string]bool{}
	var lastEndMs int64

	for _, u := range t.Utterances {
		speaker := aai.ToString(u.Speaker)
		if speaker != "" {
			speaker = "Speaker " + speaker
			if !seen[speaker] {
				seen[speaker] = true
				participants = append(participants, speaker)
			}
		}
		sentences = append(sentences, entities.Sentence{
			Speaker:   speaker,
			Text:      aai.ToString(u.Text),
			StartTime: float64(aai.ToInt64(u.Start)) / 1000,
		})
		if end := aai.ToInt64(u.End); end > lastEndMs {
			lastEndMs = end
		}
	}

	return entities.Transcript{
		ID:              id,
		Title:           titleFromAudioURL(aai.ToString(t.AudioURL), id),
		Date:            parseCreated(created),
		DurationMinutes: float64(lastEndMs) / 60000,
		Participants:    participants,
		Sentences:       sentences,
	}
}

// titleFromAudioURL turns ".../goodwill-weekly_sync.mp3" into "goodwill weekly sync"
func titleFromAudioURL(raw, fallback string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return fallback
	}
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" || base == "/" || base == "." {
		return fallback
	}
	return base
}

var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseCreated(s string) time.Time {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
