package auth_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/authsvc/internal/auth"
)

// MockStorage is a mock implementation of auth.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

// fakeStorage is a map-backed Storage used by end-to-end flow tests, where
// the record written by Register must be visible to the later steps.
type fakeStorage struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{users: make(map[string]*auth.User)}
}

func (s *fakeStorage) CreateUser(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return auth.ErrUsernameTaken
	}
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *fakeStorage) GetUserByUsername(_ context.Context, username string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
