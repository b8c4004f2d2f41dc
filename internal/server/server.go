package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"shop/internal/metrics"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Log            *slog.Logger
	Metrics        *metrics.Metrics
	Sessions       middleware.SessionResolver
	AdminJWTSecret string
	CORSOrigins    []string
}

// echoの組み立て（共通ミドルウェア＋ルート）
func New(opts Options, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomw.CORSWithConfig(corsConfig(opts.CORSOrigins)))
	e.Use(opts.Metrics.Middleware())

	RegisterRoutes(e, opts, h)
	return e
}

// "*"のときはcredentialsを付けない
func corsConfig(origins []string) echomw.CORSConfig {
	return echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}

// ctxが終わったら10秒以内に止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server started", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
