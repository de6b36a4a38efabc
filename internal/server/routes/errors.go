package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatusFor maps a query pipeline error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.IsAny(err, errors.ErrDisallowedQuery, errors.ErrUnsupportedQueryType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, errors.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, err error) error {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "err", err)
		return c.JSON(status, map[string]string{"error": "Internal server error", "kind": errors.Kind(err)})
	}
	return c.JSON(status, map[string]string{"error": errors.UserMessage(err), "kind": errors.Kind(err)})
}
