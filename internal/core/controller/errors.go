package controller

import (
	"errors"
	"net/http"

	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/service"
	"gitlab.com/s.izotov81/eventapi/internal/core/validation"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"
)

const (
	msgNotAuthorized  = "Not authorized"
	msgEventNotFound  = "Event not found"
	msgInternalError  = "Internal server error"
	msgInvalidRequest = "Invalid request format"
)

// respondError переводит ошибку слоя сервисов в HTTP ответ
func respondError(resp responder.Responder, logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		resp.Invalid(w, verrs)
	case errors.Is(err, service.ErrEventNotFound):
		resp.Error(w, http.StatusNotFound, msgEventNotFound)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, auth.ErrUnauthorized):
		// пользователь удален параллельным запросом
		resp.Error(w, http.StatusUnauthorized, msgNotAuthorized)
	default:
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		resp.Error(w, http.StatusInternalServerError, msgInternalError)
	}
}

// currentUser достает пользователя, положенного в контекст AuthMiddleware
func currentUser(resp responder.Responder, w http.ResponseWriter, r *http.Request) (entity.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		resp.Error(w, http.StatusUnauthorized, msgNotAuthorized)
	}
	return user, ok
}
