package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop/internal/domain/model"
	"shop/internal/repository"
)

// usernameまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(username string, password string) error
	ValidateLogin(username string, password string) error
}

type UserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	SessionID string
	User      UserDTO
}

type AuthUsecase struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	validator AuthValidator
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		verifier:  verifier,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	username := strings.TrimSpace(in.Username)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(username, in.Password); err != nil {
		return UserDTO{}, validationError(err.Error())
	}

	//username重複チェック
	existing, err := u.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return UserDTO{}, conflict("username already exists")
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return UserDTO{}, fmt.Errorf("find user: %w", err)
	}

	//平文は保存しない
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserDTO{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashed,
	}
	if err := u.users.Create(ctx, user); err != nil {
		//同時登録はunique制約で弾く
		if errors.Is(err, repository.ErrDuplicate) {
			return UserDTO{}, conflict("username already exists")
		}
		return UserDTO{}, fmt.Errorf("create user: %w", err)
	}

	return toUserDTO(user), nil
}

// 資格情報の確認だけ行う（セッションは作らない）
func (u *AuthUsecase) Authenticate(ctx context.Context, username string, password string) (*model.User, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !u.verifier.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ログインごとに新しいセッションを作る（既存セッションはそのまま）
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := u.validator.ValidateLogin(in.Username, in.Password); err != nil {
		return LoginResult{}, validationError(err.Error())
	}

	user, err := u.Authenticate(ctx, in.Username, in.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return LoginResult{}, unauthorized("Invalid username or password")
	}
	if err != nil {
		return LoginResult{}, err
	}

	sessionID, err := u.sessions.Create(ctx, user.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	return LoginResult{
		SessionID: sessionID,
		User:      toUserDTO(user),
	}, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Invalidate(ctx, sessionID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// session_id → ユーザー。期限切れ・ユーザー削除済みは401
func (u *AuthUsecase) ResolveSession(ctx context.Context, sessionID string) (*model.User, error) {
	username, err := u.sessions.Resolve(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, unauthorized("Session expired or invalid")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, unauthorized("Session expired or invalid")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
