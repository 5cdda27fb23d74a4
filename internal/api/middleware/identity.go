package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/property-management/property-api/internal/core/domain"
)

const (
	// HeaderUserID carries the caller identity. It is trusted as sent.
	HeaderUserID = "X-User-Id"

	userIDKey = "user_id"
)

// RequireIdentity parses X-User-Id as a positive integer and stores it in the
// context. Requests without a usable header fail with domain.ErrMissingIdentity.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := parseUserID(c.Request().Header.Get(HeaderUserID))
			if !ok {
				return domain.ErrMissingIdentity
			}
			c.Set(userIDKey, id)
			return next(c)
		}
	}
}

// UserID returns the caller identity stored by RequireIdentity.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}

func parseUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
