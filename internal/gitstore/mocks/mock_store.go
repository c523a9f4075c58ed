package mocks

import (
	"context"

	"contentapi/internal/gitstore"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Fetch(ctx context.Context, path string) (*gitstore.File, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gitstore.File), args.Error(1)
}

func (m *MockStore) Commit(ctx context.Context, req gitstore.CommitRequest) (string, error) {
	args := m.Called(ctx, req)
	if f, ok := args.Get(0).(func(context.Context, gitstore.CommitRequest) string); ok {
		return f(ctx, req), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
