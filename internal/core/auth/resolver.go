package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
)

// ErrUnauthorized учетные данные отсутствуют или недействительны
var ErrUnauthorized = errors.New("not authorized")

// UserFinder часть репозитория пользователей, нужная для аутентификации
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (entity.User, error)
	GetByTokenDigest(ctx context.Context, digest string) (entity.User, error)
}

// CredentialResolver определяет пользователя по учетным данным запроса.
// Issue выдает клиенту учетные данные после входа, Revoke отзывает их при выходе.
type CredentialResolver interface {
	Resolve(r *http.Request) (entity.User, error)
	Issue(w http.ResponseWriter, user entity.User, token string) (string, error)
	Revoke(w http.ResponseWriter, r *http.Request) error
}

// TokenResolver ищет пользователя по непрозрачному токену (API key)
type TokenResolver struct {
	users UserFinder
}

func NewTokenResolver(users UserFinder) *TokenResolver {
	return &TokenResolver{users: users}
}

func (t *TokenResolver) Resolve(r *http.Request) (entity.User, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return entity.User{}, ErrUnauthorized
	}

	user, err := t.users.GetByTokenDigest(r.Context(), Digest(token))
	if err != nil {
		return entity.User{}, notFoundAsUnauthorized(err)
	}
	if !MatchDigest(token, user.TokenDigest) {
		return entity.User{}, ErrUnauthorized
	}
	return user, nil
}

// Issue возвращает сам токен: клиент предъявляет его в каждом запросе
func (t *TokenResolver) Issue(_ http.ResponseWriter, _ entity.User, token string) (string, error) {
	return token, nil
}

// Revoke ничего не делает: ротация токена в БД уже отзывает старый
func (t *TokenResolver) Revoke(http.ResponseWriter, *http.Request) error {
	return nil
}

// TokenFromRequest извлекает токен из заголовков Authorization, X-API-Key
// или параметра token
func TokenFromRequest(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, value, found := strings.Cut(header, " ")
		if found {
			value = strings.TrimSpace(value)
			switch strings.ToLower(scheme) {
			case "bearer":
				return value
			case "token":
				// Token token="abc"
				value = strings.TrimPrefix(value, "token=")
				return strings.Trim(value, `"`)
			}
		}
	}

	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}

	return r.URL.Query().Get("token")
}

func notFoundAsUnauthorized(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUnauthorized
	}
	return fmt.Errorf("failed to resolve credential: %w", err)
}
