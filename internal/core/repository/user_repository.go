package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/db/adapter"
)

const (
	usersTable  = "users"
	eventsTable = "events"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user entity.User) (entity.User, error)
	GetByID(ctx context.Context, id int64) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByTokenDigest(ctx context.Context, digest string) (entity.User, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	Update(ctx context.Context, id int64, changes UserChanges) error
	RotateToken(ctx context.Context, id int64, digest string) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// UserChanges набор столбцов для частичного обновления пользователя.
// Поле nil означает, что столбец не меняется.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	TokenDigest  *string
}

func (c UserChanges) columns() map[string]interface{} {
	columns := map[string]interface{}{"updated_at": time.Now().UTC()}
	for column, value := range map[string]*string{
		"name":          c.Name,
		"email":         c.Email,
		"password_hash": c.PasswordHash,
		"token_digest":  c.TokenDigest,
	} {
		if value != nil {
			columns[column] = *value
		}
	}
	return columns
}

type userRepository struct {
	adapter *adapter.SQLAdapter
}

func NewUserRepository(adapter *adapter.SQLAdapter) UserRepository {
	return &userRepository{adapter: adapter}
}

func (r *userRepository) Create(ctx context.Context, user entity.User) (entity.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	id, err := r.adapter.Create(ctx, user, usersTable)
	if err != nil {
		if adapter.IsUniqueViolation(err) {
			return entity.User{}, ErrUserAlreadyExists
		}
		return entity.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (entity.User, error) {
	return r.get(ctx, adapter.Condition{Equal: sq.Eq{"id": id}})
}

// GetByEmail ищет пользователя без учета регистра email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.get(ctx, adapter.Condition{
		Where: []sq.Sqlizer{sq.Expr("LOWER(email) = LOWER(?)", email)},
	})
}

func (r *userRepository) GetByTokenDigest(ctx context.Context, digest string) (entity.User, error) {
	return r.get(ctx, adapter.Condition{Equal: sq.Eq{"token_digest": digest}})
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	cond := adapter.Condition{
		Where: []sq.Sqlizer{sq.Expr("LOWER(email) = LOWER(?)", email)},
	}
	if exceptID != 0 {
		cond.Where = append(cond.Where, sq.NotEq{"id": exceptID})
	}

	_, err := r.get(ctx, cond)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Update пишет только переданные столбцы, чтобы не затереть
// параллельную ротацию токена устаревшей копией пользователя
func (r *userRepository) Update(ctx context.Context, id int64, changes UserChanges) error {
	affected, err := r.adapter.Update(ctx, usersTable, changes.columns(), adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if adapter.IsUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// RotateToken заменяет хэш токена одним UPDATE по id
func (r *userRepository) RotateToken(ctx context.Context, id int64, digest string) error {
	affected, err := r.adapter.Update(ctx, usersTable, map[string]interface{}{
		"token_digest": digest,
		"updated_at":   time.Now().UTC(),
	}, adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		return fmt.Errorf("failed to rotate token: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete удаляет события пользователя и его самого в одной транзакции.
// Возвращает число удаленных событий.
func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var eventsDeleted int64
	err := r.adapter.WithTx(ctx, func(tx *adapter.SQLAdapter) error {
		// блокировка строки не дает вставить событие между двумя DELETE
		if err := tx.Lock(ctx, usersTable, adapter.Condition{Equal: sq.Eq{"id": id}}); err != nil {
			if errors.Is(err, adapter.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		n, err := tx.Delete(ctx, eventsTable, adapter.Condition{Equal: sq.Eq{"user_id": id}})
		if err != nil {
			return fmt.Errorf("failed to delete user events: %w", err)
		}
		eventsDeleted = n

		affected, err := tx.Delete(ctx, usersTable, adapter.Condition{Equal: sq.Eq{"id": id}})
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if affected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return eventsDeleted, nil
}

func (r *userRepository) get(ctx context.Context, cond adapter.Condition) (entity.User, error) {
	var user entity.User
	if err := r.adapter.Get(ctx, &user, usersTable, cond); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return entity.User{}, ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
