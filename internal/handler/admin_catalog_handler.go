package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shop/internal/domain/model"
	"shop/internal/middleware"
	"shop/internal/repository"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type ProductCreateRequest struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	CategoryID int64  `json:"category_id"`
}

// /admin/categories と /admin/products をまとめる
type AdminCatalogHandler struct {
	uc  *usecase.CatalogUsecase
	log *slog.Logger
}

// DI
func NewAdminCatalogHandler(uc *usecase.CatalogUsecase, log *slog.Logger) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc, log: orDefault(log)}
}

// adminを登録
func (h *AdminCatalogHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	admin := e.Group("/admin")

	admin.Use(middleware.AdminJWT(jwtSecret))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/categories", h.createCategory)
	admin.POST("/products", h.createProduct)
	admin.GET("/audit-logs", h.listAuditLogs)
}

func adminSubject(c echo.Context) string {
	sub, _ := c.Get(middleware.CtxAdminSubjectKey).(string)
	return sub
}

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	var req CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		Name:  req.Name,
		Actor: adminSubject(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) createProduct(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		Actor:      adminSubject(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ?resource_type=product&limit=20&offset=0
func (h *AdminCatalogHandler) listAuditLogs(c echo.Context) error {
	var filter repository.AuditLogFilter

	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		filter.ResourceType = &rt
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		filter.Action = &a
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid limit"})
		}
		filter.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid offset"})
		}
		filter.Offset = o
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
