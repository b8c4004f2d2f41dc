package server

import (
	"net/http"

	"shop/internal/handler"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	AdminCatalog *handler.AdminCatalogHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
}

type healthResponse struct {
	Status string `json:"status"`
}

func RegisterRoutes(e *echo.Echo, opts Options, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))

	auth := middleware.SessionAuth(opts.Sessions, opts.Log)

	h.Auth.RegisterRoutes(e, auth)
	h.Catalog.RegisterRoutes(e, auth)
	h.Cart.RegisterRoutes(e, auth)
	h.Order.RegisterRoutes(e, auth)
	h.AdminCatalog.RegisterRoutes(e, opts.AdminJWTSecret)
}
