package service

import (
	"context"
	"errors"
	"fmt"

	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	rep "taskManager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService владеет решениями по учётным данным и сам выдаёт
// бизнес-ошибки VALIDATION_ERROR / UNAUTHORIZED / CONFLICT
type AuthService struct {
	users  UserRepository
	tokens TokenSigner
}

func NewAuthService(users UserRepository, tokens TokenSigner) AuthService {
	return AuthService{
		users:  users,
		tokens: tokens,
	}
}

// SignUp хэширует пароль bcrypt (соль случайная, на каждого пользователя своя)
// и сохраняет пользователя с is_active = true
func (s *AuthService) SignUp(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return NewValidationError("username/password", "укажите имя пользователя и пароль")
	}

	if len(username) < user.UsernameMinLen || len(username) > user.UsernameMaxLen {
		return NewValidationError("username",
			fmt.Sprintf("длина должна быть от %d до %d символов", user.UsernameMinLen, user.UsernameMaxLen))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Service: Ошибка хэширования пароля", err)
		return fmt.Errorf("хэширование пароля: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicate) {
			return NewConflict("Имя пользователя занято")
		}
		logger.Error("Service: Не удалось сохранить пользователя", err,
			zap.String("username", username))
		return fmt.Errorf("сохранение пользователя: %w", err)
	}

	return nil
}

// SignIn проверяет пару логин/пароль и выдаёт подписанный токен.
// Пустые поля отсекаются до обращения к хранилищу,
// сравнение хэша у bcrypt выполняется за константное время.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", NewValidationError("username/password", "укажите имя пользователя и пароль")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return "", NewUnauthorized()
		}
		logger.Error("Service: Не удалось получить пользователя", err,
			zap.String("username", username))
		return "", fmt.Errorf("получение пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", NewUnauthorized()
	}

	token, err := s.tokens.Sign(u.Username)
	if err != nil {
		logger.Error("Service: Ошибка выпуска токена", err,
			zap.String("username", username))
		return "", fmt.Errorf("выпуск токена: %w", err)
	}

	return token, nil
}

// ResolveUser превращает bearer-токен в пользователя,
// любая проблема с токеном = UNAUTHORIZED
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*user.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return nil, NewUnauthorized()
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewUnauthorized()
		}
		logger.Error("Service: Не удалось получить пользователя", err,
			zap.String("username", username))
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	return u, nil
}
