// Package middleware contains reusable HTTP middleware: caller
// identity, JWT validation, response caching and rate limiting.
package middleware

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// HeaderUserID is the header clients use to identify the acting user
// on the sharing API.
const HeaderUserID = "X-Sharer-User-Id"

// Identity resolves the acting user for a request and stores it in
// the context under "user_id" as a uint64. The X-Sharer-User-Id
// header wins; a Bearer access token's subject claim is the fallback.
// The middleware never rejects a request by itself, handlers that
// require an identity respond 400 when none was resolved.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := c.Request().Header.Get(HeaderUserID); raw != "" {
				if id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
					c.Set("user_id", id)
					return next(c)
				}
			}
			if id, ok := subjectFromBearer(c, secret); ok {
				c.Set("user_id", id)
			}
			return next(c)
		}
	}
}

// subjectFromBearer parses the Authorization header and returns the
// token's subject claim when the token is valid.
func subjectFromBearer(c echo.Context, secret string) (uint64, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	switch sub := claims["sub"].(type) {
	case float64:
		if sub > 0 {
			return uint64(sub), true
		}
	case string:
		if id, err := strconv.ParseUint(sub, 10, 64); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}
