package delivery

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/domain/lifecycle"
	"marketplace/internal/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/http2"
)

// EchoServer runs an echo instance as a Delivery.
type EchoServer struct {
	name   string
	addr   string
	echo   *echo.Echo
	logger *slog.Logger
	h2c    *http2.Server
}

// EchoServerOption customizes an EchoServer.
type EchoServerOption func(*EchoServer)

// WithH2C serves cleartext HTTP/2 with the given idle timeout.
func WithH2C(idleTimeout time.Duration) EchoServerOption {
	return func(s *EchoServer) {
		s.h2c = &http2.Server{IdleTimeout: idleTimeout}
	}
}

func NewEchoServer(name string, port int, e *echo.Echo, logger *slog.Logger, opts ...EchoServerOption) *EchoServer {
	s := &EchoServer{
		name:   name,
		addr:   net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
		echo:   e,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *EchoServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting "+s.name, slog.String("host_port", s.addr), slog.Bool("h2c", s.h2c != nil))

	var err error
	if s.h2c != nil {
		err = s.echo.StartH2CServer(s.addr, s.h2c)
	} else {
		err = s.echo.Start(s.addr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "%s stopped", s.name)
	}

	return nil
}

// Stop drains in-flight requests within lifecycle.DefaultTimeout.
func (s *EchoServer) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down " + s.name)

	return errors.WithStack(s.echo.Shutdown(shutdownCtx))
}
