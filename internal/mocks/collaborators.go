package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/auxesia/auxesia-server/internal/model"
)

// TokenManager is a mock implementation of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(claims model.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Decode(token string) (model.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(model.Claims), args.Error(1)
}

// PasswordHasher is a mock implementation of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(plaintext, hash string) error {
	args := m.Called(plaintext, hash)
	return args.Error(0)
}

// MailDispatcher is a mock implementation of model.MailDispatcher.
type MailDispatcher struct {
	mock.Mock
}

func (m *MailDispatcher) DispatchVerification(email, token string) {
	m.Called(email, token)
}

// ImageStore is a mock implementation of model.ImageStore.
type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, reader, size)
	return args.Error(0)
}

func (m *ImageStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *ImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *ImageStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *ImageStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
