package service

import (
	"context"
	"errors"

	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
	"gitlab.com/s.izotov81/eventapi/internal/core/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash сравнивается с паролем, когда email не найден,
// чтобы время ответа не выдавало существование пользователя
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZhTrW7WfR3b2QEq0vQ2Oa2")

// SessionService вход и выход с ротацией токена
type SessionService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewSessionService(users repository.UserRepository, logger *zap.Logger) *SessionService {
	return &SessionService{
		users:  users,
		logger: logger.Named("sessions"),
	}
}

// Login проверяет пароль и выпускает новый токен
func (s *SessionService) Login(ctx context.Context, email, password string) (entity.User, string, error) {
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return entity.User{}, "", ErrInvalidCredentials
		}
		return entity.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed: invalid password", zap.Int64("user_id", user.ID))
		return entity.User{}, "", ErrInvalidCredentials
	}

	token, err := s.rotate(ctx, &user)
	if err != nil {
		return entity.User{}, "", err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// Logout ротирует токен, после чего прежние учетные данные недействительны
func (s *SessionService) Logout(ctx context.Context, user entity.User) error {
	if _, err := s.rotate(ctx, &user); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.Int64("user_id", user.ID))
	return nil
}

func (s *SessionService) rotate(ctx context.Context, user *entity.User) (string, error) {
	token, digest, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}

	if err := s.users.RotateToken(ctx, user.ID, digest); err != nil {
		return "", err
	}

	user.TokenDigest = digest
	return token, nil
}
