package handler

import (
	"log/slog"
	"net/http"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products, /categories, /search
type CatalogHandler struct {
	uc  *usecase.CatalogUsecase
	log *slog.Logger
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: orDefault(log)}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/products", h.listProducts, auth)
	e.GET("/products/:id", h.detail, auth)
	e.GET("/categories", h.listCategories, auth)
	e.GET("/search", h.search, auth)
}

func (h *CatalogHandler) listProducts(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) search(c echo.Context) error {
	out, err := h.uc.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
