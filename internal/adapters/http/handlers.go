package http

import (
	"github.com/labstack/echo/v4"

	"github.com/postkeeper/core/internal/domain/entities"
)

// Request/Response types

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message string               `json:"message"`
	Errors  []entities.Violation `json:"errors,omitempty"`
}

// bindPayload decodes the JSON request body into an ordered field set.
// Path and query parameters are never merged into it.
func bindPayload(c echo.Context) (entities.Fields, error) {
	var payload entities.Fields
	if err := (&echo.DefaultBinder{}).BindBody(c, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
