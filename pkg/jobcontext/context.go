package jobcontext

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRunID        KeyContext = "sync_run_id"
	keyTranscriptID KeyContext = "transcript_id"
	keySlot         KeyContext = "slot"
	keyStartTime    KeyContext = "start_time"
)

// Metadata holds metadata for one transcript pipeline inside a sync run
type Metadata struct {
	RunID        uuid.UUID
	TranscriptID string
	Slot         int
	StartTime    time.Time
}

// Begin derives the context of one transcript pipeline. No deadline is added;
// outbound calls rely on their transport timeouts.
func Begin(parentCtx context.Context, runID uuid.UUID, transcriptID string, slot int) context.Context {
	ctx := WithRunID(parentCtx, runID)
	ctx = context.WithValue(ctx, keyTranscriptID, transcriptID)
	ctx = context.WithValue(ctx, keySlot, slot)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// WithRunID tags a context with the sync run it belongs to
func WithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, keyRunID, runID)
}

// GetRunID extracts the sync run id from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// GetTranscriptID extracts the transcript id from context
func GetTranscriptID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keyTranscriptID).(string)
	return id, ok
}

// GetSlot extracts the position of the transcript within its batch
func GetSlot(ctx context.Context) int {
	slot, ok := ctx.Value(keySlot).(int)
	if !ok {
		return -1
	}
	return slot
}

// GetStartTime extracts the pipeline start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// GetMetadata extracts all metadata from context
func GetMetadata(ctx context.Context) *Metadata {
	runID, _ := GetRunID(ctx)
	transcriptID, _ := GetTranscriptID(ctx)
	startTime, _ := GetStartTime(ctx)

	return &Metadata{
		RunID:        runID,
		TranscriptID: transcriptID,
		Slot:         GetSlot(ctx),
		StartTime:    startTime,
	}
}

// LogFields renders the metadata present in ctx as zap fields
func LogFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id, ok := GetRunID(ctx); ok {
		fields = append(fields, zap.String("sync_run_id", id.String()))
	}
	if id, ok := GetTranscriptID(ctx); ok {
		fields = append(fields, zap.String("transcript_id", id))
	}
	if slot := GetSlot(ctx); slot >= 0 {
		fields = append(fields, zap.Int("slot", slot))
	}
	return fields
}

// RetryPolicy bounds an exponential backoff
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy is used for outbound calls to third-party APIs
var DefaultRetryPolicy = RetryPolicy{
	InitialInterval: 2 * time.Second,
	MaxInterval:     10 * time.Second,
	MaxElapsedTime:  30 * time.Second,
}

// Retry runs fn with exponential backoff until it succeeds, returns an error
// that IsRetryableError rejects, or the policy's elapsed time runs out.
func Retry(ctx context.Context, policy RetryPolicy, fn func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = policy.InitialInterval
	bo.MaxInterval = policy.MaxInterval
	bo.MaxElapsedTime = policy.MaxElapsedTime

	op := func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, deadlocks, rate limits
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "eof") {
		return true
	}

	// Database deadlock/lock errors (Postgres)
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "40001") || // serialization_failure
		strings.Contains(errStr, "40p01") { // deadlock_detected
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "status 429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
