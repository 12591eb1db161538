package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eventscript-team/eventscript/errors"
	"github.com/eventscript-team/eventscript/internal/adapter/dto/common"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes the uniform success envelope
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}, message string) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, common.OK(data, message))
}

// HandleError centralizes error handling and logging. Every failure resolves
// to the uniform result envelope; nothing is re-thrown to Echo.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	// Try to detect AppError from project errors package
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.String("app_code", appErr.Code.String()),
				zap.Error(err),
			)
		}

		return c.JSON(appErr.HTTPCode, common.Fail(appErr.Code.String(), appErr.Message))
	}

	// Non-AppError => internal server error, full detail stays server-side
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError,
		common.Fail(errors.ErrorCode_INTERNAL.String(), "Internal server error"))
}
