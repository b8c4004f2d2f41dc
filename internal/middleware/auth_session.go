package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

const sessionInvalidMessage = "Session expired or invalid"

// AuthUsecaseのうちmiddlewareが使う部分
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*model.User, error)
}

// session_id cookieからユーザーを解決してcontextへ入れる
func SessionAuth(resolver SessionResolver, log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(sessionInvalidMessage))
			}

			user, err := resolver.ResolveSession(c.Request().Context(), cookie.Value)
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok {
					return c.JSON(he.Status, errorJSON(he.Message))
				}
				//redis障害など
				log.ErrorContext(c.Request().Context(), "session resolve failed", slog.Any("err", err))
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, user.ID)
			c.Set(CtxUsernameKey, user.Username)
			c.Set(CtxSessionIDKey, cookie.Value)

			return next(c)
		}
	}
}
