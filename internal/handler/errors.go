package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// HTTPErrorはそのまま、それ以外は500（中身は出さずログだけ）
func writeError(c echo.Context, log *slog.Logger, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	log.ErrorContext(c.Request().Context(), "internal error",
		slog.String("method", c.Request().Method),
		slog.String("route", c.Path()),
		slog.Any("err", err),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	return middleware.UserIDFromContext(c)
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
