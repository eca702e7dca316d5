// Package http hosts the echo server for the gateway.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"nearbasket/config"
	"nearbasket/internal/delivery"
	"nearbasket/internal/delivery/http/middleware"
	"nearbasket/internal/delivery/http/router"
	"nearbasket/internal/delivery/http/validator"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	ErrorMiddleware *middleware.ErrorMiddleware
	RouterParams    router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewEcho assembles the echo engine with the full middleware stack and every
// route registered. Contract tests mount the returned engine on httptest
// servers directly.
func NewEcho(logger *slog.Logger, errMiddleware *middleware.ErrorMiddleware, routerParams router.RouterParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(middleware.RequestID(logger))
	echoServer.Use(slogecho.New(logger))
	echoServer.Validator = validator.New()
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.CORS())
	echoServer.HTTPErrorHandler = errMiddleware.HandleHTTPError

	router.NewRouter(routerParams).RegisterRoutes(echoServer)

	return echoServer
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: NewEcho(params.Logger, params.ErrorMiddleware, params.RouterParams),
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
