package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
	"gitlab.com/s.izotov81/eventapi/internal/core/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound      = repository.ErrUserNotFound
	ErrUserAlreadyExists = repository.ErrUserAlreadyExists
)

type UserService struct {
	users      repository.UserRepository
	events     repository.EventRepository
	validator  *validation.Validator
	bcryptCost int
	logger     *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	events repository.EventRepository,
	validator *validation.Validator,
	bcryptCost int,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:      users,
		events:     events,
		validator:  validator,
		bcryptCost: bcryptCost,
		logger:     logger.Named("users"),
	}
}

// Register создает пользователя. Email приводится к нижнему регистру,
// токен генерируется сразу, но в БД попадает только его хэш.
func (s *UserService) Register(ctx context.Context, req entity.RegisterRequest) (entity.User, error) {
	errs := validation.Errors{}
	email := validation.NormalizeEmail(req.Email)

	if err := s.checkEmail(ctx, errs, email, 0); err != nil {
		return entity.User{}, err
	}
	s.validator.Password(errs, req.Password, req.PasswordConfirmation)
	if err := errs.Err(); err != nil {
		return entity.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	_, digest, err := auth.GenerateToken()
	if err != nil {
		return entity.User{}, err
	}

	user, err := s.users.Create(ctx, entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		TokenDigest:  digest,
	})
	if err != nil {
		// гонка двух регистраций с одним email
		if errors.Is(err, ErrUserAlreadyExists) {
			return entity.User{}, validation.Errors{"email": {validation.MsgTaken}}
		}
		return entity.User{}, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Profile возвращает профиль пользователя с его событиями
func (s *UserService) Profile(ctx context.Context, user entity.User) (entity.UserProfile, error) {
	events, err := s.events.ListByUser(ctx, user.ID)
	if err != nil {
		return entity.UserProfile{}, err
	}
	return entity.NewUserProfile(user, events), nil
}

// Update частично обновляет профиль. В БД уходят только присланные поля,
// token_digest только при перевыпуске. Если запрошен перевыпуск,
// возвращает новый токен, иначе пустую строку.
func (s *UserService) Update(ctx context.Context, user entity.User, req entity.UpdateUserRequest) (entity.User, string, error) {
	errs := validation.Errors{}
	changes := repository.UserChanges{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		changes.Name = &name
	}

	if req.Email != nil {
		email := validation.NormalizeEmail(*req.Email)
		if err := s.checkEmail(ctx, errs, email, user.ID); err != nil {
			return entity.User{}, "", err
		}
		changes.Email = &email
	}

	if req.Password != nil || req.PasswordConfirmation != nil {
		password, confirmation := deref(req.Password), deref(req.PasswordConfirmation)
		s.validator.Password(errs, password, confirmation)
		if len(errs["password"]) == 0 && len(errs["password_confirmation"]) == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
			if err != nil {
				return entity.User{}, "", fmt.Errorf("failed to hash password: %w", err)
			}
			passwordHash := string(hash)
			changes.PasswordHash = &passwordHash
		}
	}

	if err := errs.Err(); err != nil {
		return entity.User{}, "", err
	}

	var token string
	if req.RegenerateToken {
		var digest string
		var err error
		token, digest, err = auth.GenerateToken()
		if err != nil {
			return entity.User{}, "", err
		}
		changes.TokenDigest = &digest
	}

	if err := s.users.Update(ctx, user.ID, changes); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return entity.User{}, "", validation.Errors{"email": {validation.MsgTaken}}
		}
		return entity.User{}, "", err
	}

	return applyChanges(user, changes), token, nil
}

// Delete удаляет пользователя вместе со всеми его событиями
func (s *UserService) Delete(ctx context.Context, user entity.User) error {
	eventsDeleted, err := s.users.Delete(ctx, user.ID)
	if err != nil {
		return err
	}

	s.logger.Info("user destroyed",
		zap.Int64("user_id", user.ID),
		zap.Int64("events_deleted", eventsDeleted),
	)
	return nil
}

func (s *UserService) checkEmail(ctx context.Context, errs validation.Errors, email string, exceptID int64) error {
	s.validator.Email(errs, "email", email)
	if email == "" {
		return nil
	}

	taken, err := s.users.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		errs.Add("email", validation.MsgTaken)
	}
	return nil
}

func applyChanges(user entity.User, changes repository.UserChanges) entity.User {
	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.Email != nil {
		user.Email = *changes.Email
	}
	if changes.PasswordHash != nil {
		user.PasswordHash = *changes.PasswordHash
	}
	if changes.TokenDigest != nil {
		user.TokenDigest = *changes.TokenDigest
	}
	return user
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
