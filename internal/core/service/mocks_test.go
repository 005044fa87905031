package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user entity.User) (entity.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (entity.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByTokenDigest(ctx context.Context, digest string) (entity.User, error) {
	args := m.Called(ctx, digest)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, changes repository.UserChanges) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) RotateToken(ctx context.Context, id int64, digest string) error {
	args := m.Called(ctx, id, digest)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventRepository implements repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event entity.Event) (entity.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(entity.Event), args.Error(1)
}

func (m *MockEventRepository) Get(ctx context.Context, id, userID int64) (entity.Event, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(entity.Event), args.Error(1)
}

func (m *MockEventRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event entity.Event) (entity.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(entity.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// createTestUser создает пользователя с паролем "qwerty"
func createTestUser(id int64, email string) entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.MinCost)
	return entity.User{
		ID:           id,
		Name:         "John Doe",
		Email:        email,
		PasswordHash: string(hash),
		TokenDigest:  "old-digest",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func strPtr(s string) *string {
	return &s
}
