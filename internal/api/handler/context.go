package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/property-management/property-api/internal/api/middleware"
	"github.com/property-management/property-api/internal/core/domain"
)

// HeaderIdempotencyKey lets clients retry a POST without creating twice.
const HeaderIdempotencyKey = "Idempotency-Key"

// callerID returns the identity stored by middleware.RequireIdentity.
func callerID(c echo.Context) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, domain.ErrMissingIdentity
	}
	return id, nil
}

// pathID parses the :id path parameter. Anything that is not a positive
// integer is reported as notFound, since no such resource can exist.
func pathID(c echo.Context, notFound error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct rules.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
