package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/postkeeper/core/internal/adapters/http"
	"github.com/postkeeper/core/internal/domain/entities"
	"github.com/postkeeper/core/internal/infrastructure/logger"
)

// classifyError maps a handler error to a status code and response body
func classifyError(err error) (int, httpHandlers.ErrorResponse) {
	var (
		validationErr *entities.ValidationError
		notFoundErr   *entities.NotFoundError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, httpHandlers.ErrorResponse{
			Message: entities.ErrValidation.Error(),
			Errors:  validationErr.Violations,
		}

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, httpHandlers.ErrorResponse{Message: notFoundErr.Error()}

	case errors.As(err, &httpErr):
		code := httpErr.Code
		// unmatched method on a known path is reported like an unknown route
		if code == http.StatusMethodNotAllowed {
			code = http.StatusNotFound
		}
		msg := http.StatusText(code)
		if m, ok := httpErr.Message.(string); ok && code == httpErr.Code {
			msg = m
		}
		return code, httpHandlers.ErrorResponse{Message: msg}

	default:
		return http.StatusInternalServerError, httpHandlers.ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := classifyError(err)

		if code >= http.StatusInternalServerError {
			var (
				readErr  *entities.StoreReadError
				writeErr *entities.StoreWriteError
				httpErr  *echo.HTTPError
			)
			switch {
			case errors.As(err, &readErr), errors.As(err, &writeErr):
				logger.Errorw("Record store failure", "error", err, "path", c.Request().URL.Path)
			case errors.As(err, &httpErr) && httpErr.Internal != nil:
				logger.Errorw("Internal server error", "error", fmt.Errorf("%v, %w", err, httpErr.Internal), "path", c.Request().URL.Path)
			default:
				logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
			}
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(code)
		} else {
			sendErr = c.JSON(code, body)
		}
		if sendErr != nil {
			logger.Errorw("Error sending response", "error", sendErr)
		}
	}
}
