package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/dto/intelligence"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/chat"
)

// ChatService answers chat messages
type ChatService interface {
	Chat(ctx context.Context, message string) chat.ChatResult
}

// Chat handles chat requests
type Chat struct {
	service ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service ChatService, logger *zap.Logger) *Chat {
	return &Chat{service: service, logger: logger}
}

// SendMessage handles POST /chat
// @Summary      Chat with project context
// @Description  Answers a question, prepending the context of the project it mentions
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      intelligence.ChatRequest  true  "Chat message"
// @Success      200      {object}  chat.ChatResult
// @Failure      400      {object}  common.ErrorResponse  "message missing"
// @Router       /chat [post]
func (h *Chat) SendMessage(c echo.Context) error {
	var req intelligence.ChatRequest
	if err := bindAndValidate(c, &req, "message is required"); err != nil {
		return HandleError(h.logger, c, err)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("message is required"))
	}

	return HandleSuccess(h.logger, c, h.service.Chat(c.Request().Context(), message))
}
