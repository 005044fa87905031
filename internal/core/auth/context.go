package auth

import (
	"context"

	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
)

type ctxKey struct{}

// WithUser кладет пользователя, найденный по учетным данным, в контекст запроса
func WithUser(ctx context.Context, user entity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext достает пользователя текущего запроса
func UserFromContext(ctx context.Context) (entity.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(entity.User)
	return user, ok
}
