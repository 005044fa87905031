package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
	"gitlab.com/s.izotov81/eventapi/internal/core/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *MockUserRepository, *MockEventRepository) {
	users := new(MockUserRepository)
	events := new(MockEventRepository)
	return NewUserService(users, events, validation.New(), bcrypt.MinCost, zap.NewNop()), users, events
}

func validRegistration() entity.RegisterRequest {
	return entity.RegisterRequest{
		Name:                 "John Doe",
		Email:                "a@gmail.com",
		Password:             "qwerty",
		PasswordConfirmation: "qwerty",
	}
}

// TestUserService_Register_Success tests successful user registration
func TestUserService_Register_Success(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	var captured entity.User
	users.On("EmailTaken", ctx, "a@gmail.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u entity.User) bool {
		captured = u
		return true
	})).Return(entity.User{ID: 1, Name: "John Doe", Email: "a@gmail.com"}, nil)

	user, err := svc.Register(ctx, validRegistration())

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@gmail.com", user.Email)
	assert.NotEqual(t, "qwerty", captured.PasswordHash, "Password should be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(captured.PasswordHash), []byte("qwerty")))
	assert.Len(t, captured.TokenDigest, 64, "Only the token digest is stored")
	users.AssertExpectations(t)
}

// TestUserService_Register_NormalizesEmail проверяет приведение email к нижнему регистру
func TestUserService_Register_NormalizesEmail(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	users.On("EmailTaken", ctx, "upcase@gmail.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u entity.User) bool {
		return u.Email == "upcase@gmail.com"
	})).Return(entity.User{ID: 2, Email: "upcase@gmail.com"}, nil)

	req := validRegistration()
	req.Email = "UpCaSE@Gmail.com"
	_, err := svc.Register(ctx, req)

	require.NoError(t, err)
	users.AssertExpectations(t)
}

// TestUserService_Register_DuplicateEmail tests registration with duplicate email
func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	users.On("EmailTaken", ctx, "a@gmail.com", int64(0)).Return(true, nil)

	_, err := svc.Register(ctx, validRegistration())

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{validation.MsgTaken}, verrs["email"])
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestUserService_Register_RaceOnInsert проверяет нарушение уникальности при вставке
func TestUserService_Register_RaceOnInsert(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	users.On("EmailTaken", ctx, "a@gmail.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(entity.User{}, repository.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, validRegistration())

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{validation.MsgTaken}, verrs["email"])
}

// TestUserService_Register_Validation проверяет сообщения об ошибках полей
func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *entity.RegisterRequest)
		want   validation.Errors
	}{
		{
			name:   "blank email",
			modify: func(r *entity.RegisterRequest) { r.Email = "" },
			want:   validation.Errors{"email": {validation.MsgBlank, validation.MsgInvalid}},
		},
		{
			name:   "email without dot",
			modify: func(r *entity.RegisterRequest) { r.Email = "cvsdfv@sdfv" },
			want:   validation.Errors{"email": {validation.MsgInvalid}},
		},
		{
			name:   "short password",
			modify: func(r *entity.RegisterRequest) { r.Password, r.PasswordConfirmation = "qw", "qw" },
			want:   validation.Errors{"password": {validation.MsgTooShort}},
		},
		{
			name:   "confirmation mismatch",
			modify: func(r *entity.RegisterRequest) { r.PasswordConfirmation = "qwertz" },
			want:   validation.Errors{"password_confirmation": {validation.MsgConfirmation}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newUserService()
			users.On("EmailTaken", mock.Anything, mock.Anything, int64(0)).Return(false, nil)

			req := validRegistration()
			tt.modify(&req)
			_, err := svc.Register(context.Background(), req)

			var verrs validation.Errors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.want, verrs)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_Profile(t *testing.T) {
	svc, _, events := newUserService()
	ctx := context.Background()
	user := createTestUser(1, "a@gmail.com")

	events.On("ListByUser", ctx, int64(1)).Return([]entity.Event{{ID: 5, Name: "Meeting", UserID: 1}}, nil)

	profile, err := svc.Profile(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, "a@gmail.com", profile.Email)
	require.Len(t, profile.Events, 1)
	assert.Equal(t, int64(5), profile.Events[0].ID)
}

func TestUserService_Update_Partial(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	user := createTestUser(1, "a@gmail.com")

	users.On("Update", ctx, int64(1), repository.UserChanges{Name: strPtr("Jane Doe")}).Return(nil)

	updated, token, err := svc.Update(ctx, user, entity.UpdateUserRequest{Name: strPtr(" Jane Doe ")})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, "a@gmail.com", updated.Email)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
	assert.Empty(t, token)
	users.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything, mock.Anything)
	users.AssertExpectations(t)
}

func TestUserService_Update_EmailTakenBySomeoneElse(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	user := createTestUser(1, "a@gmail.com")

	users.On("EmailTaken", ctx, "b@gmail.com", int64(1)).Return(true, nil)

	_, _, err := svc.Update(ctx, user, entity.UpdateUserRequest{Email: strPtr("B@gmail.com")})

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{validation.MsgTaken}, verrs["email"])
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Update_PasswordRequiresConfirmation(t *testing.T) {
	svc, users, _ := newUserService()
	user := createTestUser(1, "a@gmail.com")

	_, _, err := svc.Update(context.Background(), user, entity.UpdateUserRequest{Password: strPtr("newpass")})

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{validation.MsgConfirmation}, verrs["password_confirmation"])
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Update_PasswordAndToken(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	user := createTestUser(1, "a@gmail.com")

	var captured repository.UserChanges
	users.On("Update", ctx, int64(1), mock.MatchedBy(func(c repository.UserChanges) bool {
		captured = c
		return true
	})).Return(nil)

	_, token, err := svc.Update(ctx, user, entity.UpdateUserRequest{
		Password:             strPtr("newpass"),
		PasswordConfirmation: strPtr("newpass"),
		RegenerateToken:      true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, captured.TokenDigest)
	require.NotNil(t, captured.PasswordHash)
	assert.Equal(t, auth.Digest(token), *captured.TokenDigest)
	assert.NotEqual(t, user.TokenDigest, *captured.TokenDigest)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*captured.PasswordHash), []byte("newpass")))
	assert.Nil(t, captured.Name)
	assert.Nil(t, captured.Email)
}

// Обновление по устаревшей копии пользователя не должно трогать token_digest:
// иначе токен, выданный параллельным входом, перестанет работать.
func TestUserService_Update_KeepsTokenWithoutRegeneration(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	stale := createTestUser(1, "a@gmail.com")

	var captured repository.UserChanges
	users.On("Update", ctx, int64(1), mock.MatchedBy(func(c repository.UserChanges) bool {
		captured = c
		return true
	})).Return(nil)

	_, token, err := svc.Update(ctx, stale, entity.UpdateUserRequest{Name: strPtr("Jane")})

	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, captured.TokenDigest)
	assert.Nil(t, captured.PasswordHash)
}

func TestUserService_Update_PasswordTooLong(t *testing.T) {
	svc, users, _ := newUserService()
	long := strings.Repeat("a", 80)

	_, _, err := svc.Update(context.Background(), createTestUser(1, "a@gmail.com"), entity.UpdateUserRequest{
		Password:             &long,
		PasswordConfirmation: &long,
	})

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{validation.MsgTooLong}, verrs["password"])
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Delete(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	user := createTestUser(1, "a@gmail.com")

	users.On("Delete", ctx, int64(1)).Return(int64(3), nil)

	require.NoError(t, svc.Delete(ctx, user))
	users.AssertExpectations(t)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	users.On("Delete", ctx, int64(9)).Return(int64(0), repository.ErrUserNotFound)

	err := svc.Delete(ctx, entity.User{ID: 9})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
