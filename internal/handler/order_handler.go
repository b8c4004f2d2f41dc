package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"shop/internal/metrics"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc      *usecase.OrderUsecase
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewOrderHandler(uc *usecase.OrderUsecase, m *metrics.Metrics, log *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, metrics: m, log: orDefault(log)}
}

type CheckoutLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// itemsが空なら保存済みカートで注文
type CheckoutRequest struct {
	Items []CheckoutLineRequest `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/checkout", h.checkout, auth)

	g := e.Group("/orders")
	g.Use(auth)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	//bodyなしも許可
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil && !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	lines := make([]usecase.CheckoutLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.CheckoutLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{Items: lines})
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.metrics.OrdersCreated.Inc()

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	out, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
