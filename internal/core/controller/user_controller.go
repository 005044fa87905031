package controller

import (
	"net/http"

	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/service"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"
)

type UserController struct {
	userService *service.UserService
	resolver    auth.CredentialResolver
	responder   responder.Responder
	logger      *zap.Logger
}

func NewUserController(
	userService *service.UserService,
	resolver auth.CredentialResolver,
	responder responder.Responder,
	logger *zap.Logger,
) *UserController {
	return &UserController{
		userService: userService,
		resolver:    resolver,
		responder:   responder,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Регистрация по имени, email и паролю с подтверждением. Тело может быть обернуто в {"user": {...}}
// @Tags users
// @Accept json
// @Produce json
// @Param request body entity.RegisterRequest true "User registration data"
// @Success 201 {object} entity.UserProfile
// @Header 201 {string} Location "/v1/users"
// @Failure 400 {object} responder.ErrorResponse
// @Failure 422 {object} responder.ValidationResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/registration [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := c.responder.Decode(r, "user", &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	user, err := c.userService.Register(r.Context(), req)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/users")
	c.responder.Respond(w, http.StatusCreated, entity.NewUserProfile(user, nil))
}

// Show godoc
// @Summary Current user profile
// @Description Профиль текущего пользователя вместе с его событиями
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} entity.UserProfile
// @Failure 401 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/users [get]
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}

	profile, err := c.userService.Profile(r.Context(), user)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Respond(w, http.StatusOK, profile)
}

// Update godoc
// @Summary Update current user
// @Description Частичное обновление профиля. regenerate_token=true выпускает новый токен
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.UpdateUserRequest true "User data"
// @Success 200 {object} entity.UpdateUserResponse
// @Failure 400 {object} responder.ErrorResponse
// @Failure 401 {object} responder.ErrorResponse
// @Failure 422 {object} responder.ValidationResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/users [put]
// @Router /v1/users [patch]
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}

	var req entity.UpdateUserRequest
	if err := c.responder.Decode(r, "user", &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	updated, token, err := c.userService.Update(r.Context(), user, req)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	var credential string
	if token != "" {
		credential, err = c.resolver.Issue(w, updated, token)
		if err != nil {
			respondError(c.responder, c.logger, w, r, err)
			return
		}
	}

	profile, err := c.userService.Profile(r.Context(), updated)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Respond(w, http.StatusOK, entity.UpdateUserResponse{
		UserProfile: profile,
		Token:       credential,
	})
}

// Destroy godoc
// @Summary Delete current user
// @Description Удаляет пользователя и все его события в одной транзакции
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} responder.MessageResponse
// @Failure 401 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/users [delete]
func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}

	if err := c.userService.Delete(r.Context(), user); err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Message(w, http.StatusOK, "User was successfully destroyed.")
}
