package usecase

import (
	"errors"
	"net/http"
)

// handlerへ返すエラー（ステータスとメッセージ）
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// errがHTTPErrorならそれを返す
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// 400
func validationError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 401
func unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// 404
func notFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// 409
func conflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}
