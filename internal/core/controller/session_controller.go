package controller

import (
	"errors"
	"net/http"

	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/service"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/metrics"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"
)

type SessionController struct {
	sessionService *service.SessionService
	resolver       auth.CredentialResolver
	responder      responder.Responder
	logger         *zap.Logger
}

func NewSessionController(
	sessionService *service.SessionService,
	resolver auth.CredentialResolver,
	responder responder.Responder,
	logger *zap.Logger,
) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		resolver:       resolver,
		responder:      responder,
		logger:         logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Проверяет email и пароль, ротирует токен и возвращает учетные данные
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body entity.LoginRequest true "Credentials"
// @Success 200 {object} entity.LoginResponse
// @Failure 400 {object} responder.ErrorResponse
// @Failure 401 {object} responder.MessageResponse
// @Failure 403 {object} responder.MessageResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/login [post]
func (c *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	switch _, err := c.resolver.Resolve(r); {
	case err == nil:
		metrics.ObserveLogin("forbidden")
		c.responder.Message(w, http.StatusForbidden, "You are already logged in")
		return
	case !errors.Is(err, auth.ErrUnauthorized):
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	var req entity.LoginRequest
	if err := c.responder.Decode(r, "user", &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	user, token, err := c.sessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.ObserveLogin("failure")
			c.responder.Message(w, http.StatusUnauthorized, "Wrong email or password")
			return
		}
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	credential, err := c.resolver.Issue(w, user, token)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	metrics.ObserveLogin("success")
	c.responder.Respond(w, http.StatusOK, entity.LoginResponse{
		Message: "Logged in successfully",
		Token:   credential,
	})
}

// Logout godoc
// @Summary Log out
// @Description Ротирует токен и отзывает текущие учетные данные
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} responder.MessageResponse
// @Failure 403 {object} responder.MessageResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/logout [delete]
func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := c.resolver.Resolve(r)
	if err != nil {
		if !errors.Is(err, auth.ErrUnauthorized) {
			respondError(c.responder, c.logger, w, r, err)
			return
		}
		c.responder.Message(w, http.StatusForbidden, "You are not logged in")
		return
	}

	if err := c.sessionService.Logout(r.Context(), user); err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	if err := c.resolver.Revoke(w, r); err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Message(w, http.StatusOK, "Logged out successfully")
}
