// Package http implements the HTTP delivery adapter on Echo.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"upkiip/config"
	"upkiip/internal/delivery"
	deliverymiddleware "upkiip/internal/delivery/http/middleware"
	"upkiip/internal/delivery/http/router"
	"upkiip/internal/delivery/http/validator"
	"upkiip/internal/domain/lifecycle"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config              *config.Config
	Logger              *slog.Logger
	RouterParams        router.RouterParams
	RequestIDMiddleware *deliverymiddleware.RequestIDMiddleware
	LoggerMiddleware    *deliverymiddleware.LoggerMiddleware
	ErrorMiddleware     *deliverymiddleware.ErrorMiddleware
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Validator = validator.New()
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())
	echoServer.Use(echoprometheus.NewMiddleware("upkiip"))
	echoServer.Use(params.RequestIDMiddleware.Process)
	echoServer.Use(params.LoggerMiddleware.Handle)

	if params.Config.HTTP.Timeouts.ReadTimeout > 0 {
		echoServer.Server.ReadTimeout = params.Config.HTTP.Timeouts.ReadTimeout
	}
	if params.Config.HTTP.Timeouts.ReadHeaderTimeout > 0 {
		echoServer.Server.ReadHeaderTimeout = params.Config.HTTP.Timeouts.ReadHeaderTimeout
	}
	if params.Config.HTTP.Timeouts.WriteTimeout > 0 {
		echoServer.Server.WriteTimeout = params.Config.HTTP.Timeouts.WriteTimeout
	}
	if params.Config.HTTP.Timeouts.IdleTimeout > 0 {
		echoServer.Server.IdleTimeout = params.Config.HTTP.Timeouts.IdleTimeout
	}

	router := router.NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
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
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
