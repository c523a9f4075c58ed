package mocks

import (
	"context"

	"contentapi/internal/model"
	"contentapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAnnouncementService struct {
	mock.Mock
}

func (m *MockAnnouncementService) Load(ctx context.Context) (*model.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) Publish(ctx context.Context, edit service.AnnouncementEdit) (*model.Announcement, error) {
	args := m.Called(ctx, edit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

type MockNewsService struct {
	mock.Mock
}

func (m *MockNewsService) List(ctx context.Context) ([]model.News, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.News), args.Error(1)
}

func (m *MockNewsService) Create(ctx context.Context, draft service.NewsDraft) (*model.News, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

func (m *MockNewsService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context) ([]model.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) Create(ctx context.Context, draft service.NotificationDraft) (*model.Notification, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
