package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/presenter"
)

// DocumentLister lists published meeting documents
type DocumentLister interface {
	ListDocuments(ctx context.Context) ([]string, error)
}

// Documents handles published document requests
type Documents struct {
	store  DocumentLister
	logger *zap.Logger
}

// NewDocumentsHandler creates a new documents handler
func NewDocumentsHandler(store DocumentLister, logger *zap.Logger) *Documents {
	return &Documents{store: store, logger: logger}
}

// ListDocuments handles GET /documents
// @Summary      List published documents
// @Description  Lists the object keys of every published meeting document
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  intelligence.DocumentListResponse
// @Failure      500  {object}  common.ErrorResponse  "Storage failure"
// @Router       /documents [get]
func (h *Documents) ListDocuments(c echo.Context) error {
	keys, err := h.store.ListDocuments(c.Request().Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to list documents", zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("list_documents", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToDocumentListResponse(keys))
}
