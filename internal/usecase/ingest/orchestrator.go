// Package ingest drives sync cycles: fetch a batch of transcripts and run each
// one through matching, extraction, recording and publishing.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/pkg/jobcontext"
)

// TranscriptSource delivers the most recent transcripts
type TranscriptSource interface {
	Name() string
	FetchTranscripts(ctx context.Context, limit int) ([]entities.Transcript, error)
}

// ProjectMatcher associates a meeting title with a project
type ProjectMatcher interface {
	MatchTitle(ctx context.Context, title string) (*entities.Project, error)
}

// InsightExtractor derives structured insight; it never fails
type InsightExtractor interface {
	Extract(ctx context.Context, t entities.Transcript) *entities.Insight
}

// MeetingRecorder persists a meeting and its insights
type MeetingRecorder interface {
	Record(ctx context.Context, t entities.Transcript, insight *entities.Insight, projectID *string) error
}

// DocumentPublisher writes the meeting document
type DocumentPublisher interface {
	Publish(ctx context.Context, t entities.Transcript, insight *entities.Insight, projectID *string) error
}

// IndexNotifier asks the search index to re-ingest published documents
type IndexNotifier interface {
	Sync(ctx context.Context) error
}

// Options tunes a sync cycle
type Options struct {
	BatchSize   int
	Concurrency int
	Retry       jobcontext.RetryPolicy
}

// ItemResult is the outcome of one transcript pipeline
type ItemResult struct {
	TranscriptID string  `json:"transcriptId"`
	Title        string  `json:"title"`
	ProjectID    *string `json:"projectId"`
	Recorded     bool    `json:"recorded"`
	Published    bool    `json:"published"`
	Error        string  `json:"error,omitempty"`
}

// Succeeded reports whether the meeting was both recorded and published
func (r ItemResult) Succeeded() bool { return r.Recorded && r.Published }

// SyncResult is always well-formed, whatever happened during the cycle
type SyncResult struct {
	Count   int          `json:"count"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details string       `json:"details,omitempty"`
	Results []ItemResult `json:"results,omitempty"`
}

// Orchestrator runs sync cycles
type Orchestrator struct {
	source    TranscriptSource
	matcher   ProjectMatcher
	extractor InsightExtractor
	recorder  MeetingRecorder
	publisher DocumentPublisher
	notifier  IndexNotifier
	opts      Options
	logger    *zap.Logger

	notifyWg sync.WaitGroup
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(
	source TranscriptSource,
	matcher ProjectMatcher,
	extractor InsightExtractor,
	recorder MeetingRecorder,
	publisher DocumentPublisher,
	notifier IndexNotifier,
	opts Options,
	logger *zap.Logger,
) *Orchestrator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = opts.BatchSize
	}
	if opts.Retry == (jobcontext.RetryPolicy{}) {
		opts.Retry = jobcontext.DefaultRetryPolicy
	}
	return &Orchestrator{
		source:    source,
		matcher:   matcher,
		extractor: extractor,
		recorder:  recorder,
		publisher: publisher,
		notifier:  notifier,
		opts:      opts,
		logger:    logger,
	}
}

// RunSync fetches one batch and processes every transcript concurrently. One
// transcript failing never affects its siblings; Count only includes
// transcripts that were both recorded and published.
func (o *Orchestrator) RunSync(ctx context.Context) SyncResult {
	runID := uuid.New()
	ctx = jobcontext.WithRunID(ctx, runID)
	started := time.Now()

	transcripts, err := o.fetch(ctx)
	if err != nil {
		if o.logger != nil {
			o.logger.Error("❌ Failed to fetch transcripts", append(jobcontext.LogFields(ctx), zap.Error(err))...)
		}
		return failure(err)
	}
	if len(transcripts) == 0 {
		if o.logger != nil {
			o.logger.Info("📭 No new meetings to sync", jobcontext.LogFields(ctx)...)
		}
		return SyncResult{Count: 0, Message: "No new meetings to sync"}
	}

	results := make([]ItemResult, len(transcripts))

	var g errgroup.Group
	g.SetLimit(o.opts.Concurrency)
	for i := range transcripts {
		g.Go(func() error {
			results[i] = o.process(jobcontext.Begin(ctx, runID, transcripts[i].ID, i), transcripts[i])
			// outcomes are collected, never propagated, so siblings keep running
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	for _, r := range results {
		if r.Succeeded() {
			count++
		}
	}

	o.Notify(ctx)

	if o.logger != nil {
		o.logger.Info("✅ Sync cycle finished", append(jobcontext.LogFields(ctx),
			zap.Int("fetched", len(transcripts)),
			zap.Int("succeeded", count),
			zap.Duration("elapsed", time.Since(started)),
		)...)
	}

	return SyncResult{
		Count:   count,
		Message: fmt.Sprintf("Successfully synced %d of %d meetings", count, len(transcripts)),
		Results: results,
	}
}

// Notify signals the search index in the background. Failures are logged and
// never reach the caller; Wait blocks until outstanding signals finish.
func (o *Orchestrator) Notify(ctx context.Context) {
	if o.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	o.notifyWg.Add(1)
	go func() {
		defer o.notifyWg.Done()
		err := jobcontext.Retry(ctx, o.opts.Retry, o.notifier.Sync)
		if err != nil && o.logger != nil {
			o.logger.Warn("⚠️ Search index resync failed, index stays stale until next sync",
				append(jobcontext.LogFields(ctx), zap.Error(err))...)
		}
	}()
}

// Wait blocks until background index signals have finished
func (o *Orchestrator) Wait() {
	o.notifyWg.Wait()
}

func (o *Orchestrator) fetch(ctx context.Context) ([]entities.Transcript, error) {
	if o.source == nil {
		return nil, appErrors.ErrConfigMissing("TRANSCRIPT_SOURCE")
	}

	var transcripts []entities.Transcript
	err := jobcontext.Retry(ctx, o.opts.Retry, func(ctx context.Context) error {
		var err error
		transcripts, err = o.source.FetchTranscripts(ctx, o.opts.BatchSize)
		return err
	})
	if err != nil {
		return nil, appErrors.ErrTranscriptSourceFailed(o.source.Name(), err)
	}
	if len(transcripts) > o.opts.BatchSize {
		transcripts = transcripts[:o.opts.BatchSize]
	}
	return transcripts, nil
}

func (o *Orchestrator) process(ctx context.Context, t entities.Transcript) (res ItemResult) {
	res = ItemResult{TranscriptID: t.ID, Title: t.Title}

	defer func() {
		if p := recover(); p != nil {
			res.Error = appErrors.ErrInternal(fmt.Errorf("panic recovered: %v", p)).Error()
			if o.logger != nil {
				o.logger.Error("❌ Transcript pipeline panicked", append(jobcontext.LogFields(ctx), zap.Any("panic", p))...)
			}
		}
	}()

	if t.ID == "" {
		res.Error = entities.ErrEmptyTranscriptID.Error()
		return res
	}

	var projectID *string
	project, err := o.matcher.MatchTitle(ctx, t.Title)
	if err != nil {
		// association failure is not fatal: the meeting is stored without a project
		if o.logger != nil {
			o.logger.Warn("⚠️ Project matching failed", append(jobcontext.LogFields(ctx), zap.Error(err))...)
		}
	} else if project != nil {
		id := project.ID
		projectID = &id
	}
	res.ProjectID = projectID

	insight := o.extractor.Extract(ctx, t)

	if err := o.recorder.Record(ctx, t, insight, projectID); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Recorded = true

	if err := o.publisher.Publish(ctx, t, insight, projectID); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Published = true

	return res
}

func failure(err error) SyncResult {
	details := err.Error()
	// a missing credential is reported by its readable message alone
	for e := err; e != nil; e = errors.Unwrap(e) {
		if appErr, ok := e.(appErrors.AppError); ok && appErr.Code == appErrors.ErrorCode_CONFIG_MISSING {
			details = appErr.Message
			break
		}
	}
	return SyncResult{
		Count:   0,
		Error:   appErrors.ErrSyncFailed(err).Message,
		Details: details,
	}
}
