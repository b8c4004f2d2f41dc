package validator

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"shop/internal/usecase"
)

const (
	maxUsernameLen = 150
	// bcryptは72バイトまでしか見ない
	maxPasswordBytes = 72
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must be at most 150 characters")
	ErrUsernameSpace    = errors.New("username must not contain whitespace")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(username string, password string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" {
		return ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return ErrUsernameTooLong
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return ErrUsernameSpace
	}

	return validatePassword(password)
}

// ログインは形式だけ見る（照合はusecase）
func (v *authValidator) ValidateLogin(username string, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
