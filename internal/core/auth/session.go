package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/cache"
)

const sessionKeyPrefix = "session:"

// SessionStore серверное хранилище сессий поверх TTL-кэша
type SessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSessionStore(c cache.Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

// Create открывает сессию и возвращает ее идентификатор
func (s *SessionStore) Create(userID int64) string {
	id := uuid.NewString()
	s.cache.Set(sessionKeyPrefix+id, userID, s.ttl)
	return id
}

// Lookup возвращает id пользователя сессии
func (s *SessionStore) Lookup(id string) (int64, bool) {
	if id == "" {
		return 0, false
	}
	v, ok := s.cache.Get(sessionKeyPrefix + id)
	if !ok {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}

// Destroy закрывает сессию
func (s *SessionStore) Destroy(id string) {
	s.cache.Delete(sessionKeyPrefix + id)
}

// SessionResolver аутентификация по cookie с идентификатором серверной сессии
type SessionResolver struct {
	users      UserFinder
	store      *SessionStore
	cookieName string
	secure     bool
}

func NewSessionResolver(users UserFinder, store *SessionStore, cookieName string, secure bool) *SessionResolver {
	return &SessionResolver{
		users:      users,
		store:      store,
		cookieName: cookieName,
		secure:     secure,
	}
}

func (s *SessionResolver) Resolve(r *http.Request) (entity.User, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return entity.User{}, ErrUnauthorized
	}

	userID, ok := s.store.Lookup(cookie.Value)
	if !ok {
		return entity.User{}, ErrUnauthorized
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		return entity.User{}, notFoundAsUnauthorized(err)
	}
	return user, nil
}

// Issue открывает новую сессию и выставляет cookie
func (s *SessionResolver) Issue(w http.ResponseWriter, user entity.User, _ string) (string, error) {
	id := s.store.Create(user.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.store.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Revoke закрывает текущую сессию и стирает cookie
func (s *SessionResolver) Revoke(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		s.store.Destroy(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
