package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit allows rps requests per second with the given burst per client.
// Clients are told apart by X-User-Id, or by remote IP when the header is
// absent.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	if burst <= 0 {
		burst = int(rps) + 1
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store:               store,
		IdentifierExtractor: clientKey,
	})
}

func clientKey(c echo.Context) (string, error) {
	if id, ok := parseUserID(c.Request().Header.Get(HeaderUserID)); ok {
		return "user:" + strconv.FormatInt(id, 10), nil
	}
	return "ip:" + c.RealIP(), nil
}
