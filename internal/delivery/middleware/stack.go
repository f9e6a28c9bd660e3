package middleware

import (
	"log/slog"

	"marketplace/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// UseBase installs the middleware every marketplace server shares:
// panic recovery, then request IDs, then access logging.
func UseBase(e *echo.Echo, cfg *config.Config, logger *slog.Logger) {
	e.Use(echomiddleware.Recover())
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)
}
