package middleware

import "github.com/labstack/echo/v4"

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUsernameKey     = "username"      // string
	CtxSessionIDKey    = "session_id"    // string
	CtxAdminSubjectKey = "admin_subject" // string
	CtxAdminRoleKey    = "admin_role"    // string
)

// セッションcookie名
const SessionCookieName = "session_id"

type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Message: msg}
}

// SessionAuthが入れたuser_idを取り出す
func UserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func SessionIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxSessionIDKey).(string)
	return id, ok && id != ""
}

func UsernameFromContext(c echo.Context) (string, bool) {
	name, ok := c.Get(CtxUsernameKey).(string)
	return name, ok && name != ""
}
