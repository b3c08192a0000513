package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/dto/common"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data as a 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, data)
}

// HandleError centralizes error handling and logging using provided logger.
// Errors that are not an AppError are reported as internal.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code.String(),
		Details: appErr.Details,
	})
}

// bindAndValidate binds the request into req and runs the registered
// validator; validation failures are reported as invalid
func bindAndValidate(c echo.Context, req interface{}, invalid string) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(invalid).WithDetail("validation", err.Error())
	}
	return nil
}
