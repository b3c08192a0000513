// Package publish renders meetings as markdown documents for the search index.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/pkg/jobcontext"
)

const none = "_None_"

// DocumentStore persists a rendered document under the meeting's key
type DocumentStore interface {
	PutDocument(ctx context.Context, meetingID string, body []byte) (string, error)
}

// Publisher renders and uploads meeting documents
type Publisher struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewPublisher creates a Publisher
func NewPublisher(store DocumentStore, logger *zap.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Publish renders the document and writes it, replacing any earlier version
func (p *Publisher) Publish(ctx context.Context, t entities.Transcript, insight *entities.Insight, projectID *string) error {
	if t.ID == "" {
		return entities.ErrEmptyTranscriptID
	}

	key, err := p.store.PutDocument(ctx, t.ID, Render(t, insight, projectID))
	if err != nil {
		if p.logger != nil {
			p.logger.Error("❌ Failed to publish meeting document", append(jobcontext.LogFields(ctx), zap.Error(err))...)
		}
		return appErrors.ErrPublishFailed(t.ID, err)
	}

	if p.logger != nil {
		p.logger.Info("📄 Meeting document published", append(jobcontext.LogFields(ctx), zap.String("key", key))...)
	}
	return nil
}

// Render produces the markdown document. The output depends only on its inputs.
func Render(t entities.Transcript, insight *entities.Insight, projectID *string) []byte {
	if insight == nil {
		insight = entities.FallbackInsight(t.Title)
	}
	project := "unknown"
	if projectID != nil && *projectID != "" {
		project = *projectID
	}

	var b bytes.Buffer

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", t.Title)
	fmt.Fprintf(&b, "project: %s\n", project)
	fmt.Fprintf(&b, "meeting_type: %s\n", insight.MeetingType)
	fmt.Fprintf(&b, "date: %s\n", t.Date.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "duration_minutes: %d\n", t.DurationRounded())
	fmt.Fprintf(&b, "insight_count: %d\n", len(insight.Insights))
	fmt.Fprintf(&b, "action_item_count: %d\n", len(insight.ActionItems))
	fmt.Fprintf(&b, "risk_count: %d\n", len(insight.Risks))
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", t.Title)

	b.WriteString("## Summary\n\n")
	if s := strings.TrimSpace(insight.Summary); s != "" {
		b.WriteString(s)
	} else {
		b.WriteString(none)
	}
	b.WriteString("\n\n")

	writeNumbered(&b, "Action Items", insight.ActionItems)
	writeNumbered(&b, "Decisions", insight.Decisions)

	b.WriteString("## Risk Flags\n\n")
	if len(insight.Risks) == 0 {
		b.WriteString(none + "\n")
	}
	for _, r := range insight.Risks {
		fmt.Fprintf(&b, "- [%s] %s\n", strings.ToUpper(string(r.Severity)), r.Title)
	}
	b.WriteString("\n")

	b.WriteString("## Transcript\n\n")
	if len(t.Sentences) == 0 {
		b.WriteString(none + "\n")
	}
	for _, s := range t.Sentences {
		speaker := strings.TrimSpace(s.Speaker)
		if speaker == "" {
			speaker = "Unknown"
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", entities.Timestamp(s.StartTime), speaker, strings.TrimSpace(s.Text))
	}

	return b.Bytes()
}

func writeNumbered(b *bytes.Buffer, heading string, items []string) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if len(items) == 0 {
		b.WriteString(none + "\n\n")
		return
	}
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}
