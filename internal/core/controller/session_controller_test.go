package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/service"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubResolver struct {
	user entity.User
	err  error
}

func (s stubResolver) Resolve(*http.Request) (entity.User, error) {
	return s.user, s.err
}

func (s stubResolver) Issue(http.ResponseWriter, entity.User, string) (string, error) {
	return "", nil
}

func (s stubResolver) Revoke(http.ResponseWriter, *http.Request) error {
	return nil
}

func newSessionController(resolver auth.CredentialResolver) (*SessionController, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)
	// до сервиса запрос в этих тестах не доходит
	sessions := service.NewSessionService(nil, logger)
	return NewSessionController(sessions, resolver, responder.NewJSONResponder(), logger), logs
}

func TestSessionController_Login_ResolverFailure(t *testing.T) {
	c, logs := newSessionController(stubResolver{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{"email":"a@gmail.com","password":"qwerty"}`))
	c.Login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "db down", logs.All()[0].ContextMap()["error"])
}

func TestSessionController_Login_AlreadyLoggedIn(t *testing.T) {
	c, logs := newSessionController(stubResolver{user: entity.User{ID: 1}})

	rec := httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"You are already logged in"}`, rec.Body.String())
	assert.Zero(t, logs.Len())
}

func TestSessionController_Login_BodyTooLarge(t *testing.T) {
	c, _ := newSessionController(stubResolver{err: auth.ErrUnauthorized})

	body := `{"email":"a@gmail.com","password":"` + strings.Repeat("x", responder.MaxBodyBytes) + `"}`
	rec := httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request format"}`, rec.Body.String())
}

func TestSessionController_Logout_ResolverFailure(t *testing.T) {
	c, logs := newSessionController(stubResolver{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	c.Logout(rec, httptest.NewRequest(http.MethodDelete, "/v1/logout", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.Len())
}
