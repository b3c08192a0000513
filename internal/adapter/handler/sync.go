package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/ingest"
)

// SyncRunner runs one sync cycle
type SyncRunner interface {
	RunSync(ctx context.Context) ingest.SyncResult
}

// Sync handles sync trigger requests
type Sync struct {
	runner SyncRunner
	logger *zap.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(runner SyncRunner, logger *zap.Logger) *Sync {
	return &Sync{runner: runner, logger: logger}
}

// TriggerSync handles POST /sync
// @Summary      Sync meetings
// @Description  Fetches a batch of transcripts, extracts insights, stores and publishes them
// @Tags         Sync
// @Produce      json
// @Success      200  {object}  intelligence.SyncResponse  "Sync outcome, including failures"
// @Router       /sync [post]
func (h *Sync) TriggerSync(c echo.Context) error {
	result := h.runner.RunSync(c.Request().Context())

	if h.logger != nil {
		var failed []string
		for _, item := range result.Results {
			if !item.Succeeded() {
				failed = append(failed, item.TranscriptID)
			}
		}
		h.logger.Info("🔄 Sync request finished",
			zap.String("request_id", getRequestID(c)),
			zap.Int("count", result.Count),
			zap.Int("attempted", len(result.Results)),
			zap.Strings("failed", failed),
		)
	}

	// failures are reported in the body; the endpoint always answers 200
	return HandleSuccess(h.logger, c, presenter.ToSyncResponse(result))
}
