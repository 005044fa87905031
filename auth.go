package main

import (
	"errors"
	"fmt"
	"net/http"

	"gitlab.com/s.izotov81/eventapi/internal/config"
	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/metrics"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"
)

// AuthMiddleware пропускает запрос дальше только с действительными учетными
// данными. Найденный пользователь кладется в контекст запроса.
// @Security ApiKeyAuth
func AuthMiddleware(resolver auth.CredentialResolver, resp responder.Responder, strategy string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthorized) {
					logger.Error("failed to resolve credential", zap.Error(err))
					resp.Error(w, http.StatusInternalServerError, "Internal server error")
					return
				}

				metrics.ObserveAuthFailure(strategy)
				resp.Error(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// newCredentialResolver выбирает способ аутентификации по AUTH_STRATEGY
func newCredentialResolver(cfg *config.Config, users auth.UserFinder, sessions *auth.SessionStore) (auth.CredentialResolver, error) {
	switch cfg.Auth.Strategy {
	case config.StrategyToken:
		return auth.NewTokenResolver(users), nil
	case config.StrategySession:
		return auth.NewSessionResolver(users, sessions, cfg.Auth.CookieName, cfg.Auth.CookieSecure), nil
	case config.StrategyJWT:
		if cfg.JWT.Secret == "" {
			return nil, config.ErrJWTSecretRequired
		}
		return auth.NewJWTResolver(users, cfg.JWT.Secret, cfg.JWT.TTL), nil
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.Auth.Strategy)
	}
}
