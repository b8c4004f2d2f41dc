package handler

import (
	"log/slog"
	"net/http"
	"time"

	"shop/internal/metrics"
	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	metrics      *metrics.Metrics
	log          *slog.Logger
	sessionTTL   time.Duration // session_id cookie の有効期限
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(
	uc *usecase.AuthUsecase,
	m *metrics.Metrics,
	log *slog.Logger,
	sessionTTL time.Duration,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		metrics:      m,
		log:          orDefault(log),
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// /register, /login のリクエストボディ。
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// /logoutはセッション必須
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/register", h.register)
	e.POST("/login", h.login)
	e.POST("/logout", h.logout, auth)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		h.metrics.ObserveLogin(false)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.metrics.ObserveLogin(false)
		return writeError(c, h.log, err)
	}
	h.metrics.ObserveLogin(true)

	c.SetCookie(h.sessionCookie(out.SessionID, int(h.sessionTTL.Seconds())))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Login successful"})
}

func (h *AuthHandler) logout(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	if err := h.uc.Logout(c.Request().Context(), sessionID); err != nil {
		return writeError(c, h.log, err)
	}

	//cookie削除
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
