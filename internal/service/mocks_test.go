package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"growmate/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "generated-user-id"
	}
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByConfirmationToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockGardenRepository is a mock implementation of GardenRepository.
type MockGardenRepository struct {
	mock.Mock
}

func (m *MockGardenRepository) Create(ctx context.Context, garden *model.Garden) error {
	args := m.Called(ctx, garden)
	return args.Error(0)
}

func (m *MockGardenRepository) FindByID(ctx context.Context, id string) (*model.Garden, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenRepository) List(ctx context.Context) ([]model.Garden, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garden), args.Error(1)
}

func (m *MockGardenRepository) ListByUser(ctx context.Context, userID string) ([]model.Garden, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garden), args.Error(1)
}

func (m *MockGardenRepository) Replace(ctx context.Context, garden *model.Garden) error {
	args := m.Called(ctx, garden)
	return args.Error(0)
}

func (m *MockGardenRepository) UpdatePlants(ctx context.Context, id string, expectedVersion int, plants []model.Plant) (bool, error) {
	args := m.Called(ctx, id, expectedVersion, plants)
	return args.Bool(0), args.Error(1)
}

func (m *MockGardenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.GardenTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*model.GardenTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GardenTask), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.GardenTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GardenTask), args.Error(1)
}

func (m *MockTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.GardenTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GardenTask), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.GardenTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTrackingLogRepository is a mock implementation of TrackingLogRepository.
type MockTrackingLogRepository struct {
	mock.Mock
}

func (m *MockTrackingLogRepository) Create(ctx context.Context, log *model.PlantTrackingLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockTrackingLogRepository) FindByID(ctx context.Context, id string) (*model.PlantTrackingLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlantTrackingLog), args.Error(1)
}

func (m *MockTrackingLogRepository) ListByPlant(ctx context.Context, plantID string) ([]model.PlantTrackingLog, error) {
	args := m.Called(ctx, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlantTrackingLog), args.Error(1)
}

func (m *MockTrackingLogRepository) Replace(ctx context.Context, log *model.PlantTrackingLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockTrackingLogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockKnowledgeBaseRepository is a mock implementation of KnowledgeBaseRepository.
type MockKnowledgeBaseRepository struct {
	mock.Mock
}

func (m *MockKnowledgeBaseRepository) Create(ctx context.Context, entry *model.PlantKnowledgeBase) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockKnowledgeBaseRepository) FindByID(ctx context.Context, id string) (*model.PlantKnowledgeBase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlantKnowledgeBase), args.Error(1)
}

func (m *MockKnowledgeBaseRepository) FindByName(ctx context.Context, name string) (*model.PlantKnowledgeBase, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlantKnowledgeBase), args.Error(1)
}

func (m *MockKnowledgeBaseRepository) List(ctx context.Context) ([]model.PlantKnowledgeBase, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlantKnowledgeBase), args.Error(1)
}

func (m *MockKnowledgeBaseRepository) Replace(ctx context.Context, entry *model.PlantKnowledgeBase) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockKnowledgeBaseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockPlantCatalog is a mock implementation of PlantCatalog.
type MockPlantCatalog struct {
	mock.Mock
}

func (m *MockPlantCatalog) PlantDetails(ctx context.Context, id string) (model.PlantData, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.PlantData), args.Error(1)
}

// MockMailer is a mock implementation of notify.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
