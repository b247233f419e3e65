// Package handler defines the HTTP handlers for the sharing API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/item-sharing-service/internal/domain"
)

// getUserID extracts the acting user's id placed into the context by
// the identity middleware.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		if t > 0 {
			return t, nil
		}
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("missing user identity")
}

// requireUserID resolves the caller or writes a 400 describing the
// missing X-Sharer-User-Id header.
func requireUserID(c echo.Context) (uint64, bool) {
	uid, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "X-Sharer-User-Id header required"})
		return 0, false
	}
	return uid, true
}

// writeDomainError maps domain errors to HTTP responses: not-found to
// 404, validation to 400, conflict to 409 and anything else to 500.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case domain.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case domain.IsConflict(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// parsePage reads from/size query parameters with defaults. Malformed
// values fall through to the service layer's validation as-is.
func parsePage(c echo.Context) (from, size int) {
	from, size = 0, 20
	if raw := c.QueryParam("from"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			from = n
		} else {
			from = -1
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			size = n
		} else {
			size = 0
		}
	}
	return from, size
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
