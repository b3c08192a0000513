package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/pkg/jobcontext"
)

// Completer is a single-turn LLM completion
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Extractor turns transcripts into structured insights and dashboards into
// executive summaries. It never fails: every error degrades to a fallback.
type Extractor struct {
	llm      Completer
	maxChars int
	logger   *zap.Logger
}

// NewExtractor creates an Extractor. maxChars bounds the transcript text sent
// to the model.
func NewExtractor(llm Completer, maxChars int, logger *zap.Logger) *Extractor {
	return &Extractor{llm: llm, maxChars: maxChars, logger: logger}
}

// Extract returns the structured insight for a transcript, or the fallback
// insight when the model call or parsing fails. The result is never nil.
func (e *Extractor) Extract(ctx context.Context, t entities.Transcript) *entities.Insight {
	if e.llm == nil {
		return entities.FallbackInsight(t.Title)
	}

	prompt := BuildExtractionPrompt(t, e.maxChars)
	content, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		e.warn(ctx, "⚠️ Insight extraction failed, using fallback", err)
		return entities.FallbackInsight(t.Title)
	}

	insight, err := ParseInsight(content, t.Title)
	if err != nil {
		e.warn(ctx, "⚠️ Could not parse model output, using fallback", err,
			zap.String("raw_response", content[:min(500, len(content))]),
		)
		return entities.FallbackInsight(t.Title)
	}

	if e.logger != nil {
		e.logger.Info("🤖 Insights extracted", append(jobcontext.LogFields(ctx),
			zap.String("meeting_type", string(insight.MeetingType)),
			zap.Int("action_items", len(insight.ActionItems)),
			zap.Int("risks", len(insight.Risks)),
			zap.Int("insights", len(insight.Insights)),
		)...)
	}
	return insight
}

// Summarize returns an executive summary for a dashboard view. Failures yield
// a fixed sentence naming the project.
func (e *Extractor) Summarize(ctx context.Context, view *entities.DashboardView) string {
	if view == nil || view.Project == nil {
		return "Executive summary unavailable."
	}
	fallback := entities.ExecutiveSummaryFallback(view.Project.Name)
	if e.llm == nil {
		return fallback
	}

	content, err := e.llm.Complete(ctx, BuildSummaryPrompt(view))
	if err != nil {
		e.warn(ctx, "⚠️ Executive summary failed, using fallback", err, zap.String("project_id", view.Project.ID))
		return fallback
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return fallback
	}
	return content
}

func (e *Extractor) warn(ctx context.Context, msg string, err error, extra ...zap.Field) {
	if e.logger == nil {
		return
	}
	fields := append(jobcontext.LogFields(ctx), zap.Error(err))
	e.logger.Warn(msg, append(fields, extra...)...)
}
