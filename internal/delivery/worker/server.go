// Package worker serves the Pub/Sub push endpoint that consumes marketplace events.
package worker

import (
	"log/slog"
	"net/http"

	"marketplace/config"
	"marketplace/internal/delivery"
	"marketplace/internal/delivery/middleware"
	"marketplace/internal/delivery/worker/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := delivery.NewEchoServer(
		"event worker HTTP server",
		params.Cfg.Worker.Port,
		newEcho(params.Cfg, params.Logger, params.PushHandler),
		params.Logger,
	)

	params.Lc.Append(fx.Hook{OnStop: srv.Stop})

	return srv, nil
}

func newEcho(cfg *config.Config, logger *slog.Logger, pushHandler *handler.PushHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	middleware.UseBase(e, cfg, logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/push", pushHandler.HandlePush)

	return e
}
