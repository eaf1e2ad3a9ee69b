package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"growmate/internal/model"
	"growmate/internal/service"
)

// MockGardenService is a mock implementation of service.GardenService.
type MockGardenService struct {
	mock.Mock
}

func (m *MockGardenService) Create(ctx context.Context, garden *model.Garden) (*model.Garden, error) {
	args := m.Called(ctx, garden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenService) Get(ctx context.Context, id string) (*model.Garden, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenService) List(ctx context.Context) ([]model.Garden, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Garden), args.Error(1)
}

func (m *MockGardenService) ListByUser(ctx context.Context, userID string) ([]model.Garden, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Garden), args.Error(1)
}

func (m *MockGardenService) Replace(ctx context.Context, id string, garden *model.Garden) (*model.Garden, error) {
	args := m.Called(ctx, id, garden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGardenService) CreateDefault(ctx context.Context, user *model.User) (*model.Garden, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenService) AddPlant(ctx context.Context, gardenID string, plant model.Plant) (*service.AddPlantResult, error) {
	args := m.Called(ctx, gardenID, plant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AddPlantResult), args.Error(1)
}

func (m *MockGardenService) RemovePlant(ctx context.Context, gardenID, plantID string) (*model.Garden, error) {
	args := m.Called(ctx, gardenID, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenService) WaterPlant(ctx context.Context, gardenID, plantID string) (*model.Garden, error) {
	args := m.Called(ctx, gardenID, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

func (m *MockGardenService) AddGrowthRecord(ctx context.Context, gardenID, plantID string, record model.GrowthRecord) (*model.Garden, error) {
	args := m.Called(ctx, gardenID, plantID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garden), args.Error(1)
}

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, task *model.GardenTask) (*model.GardenTask, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GardenTask), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, id string) (*model.GardenTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GardenTask), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context) ([]model.GardenTask, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.GardenTask), args.Error(1)
}

func (m *MockTaskService) ListByUser(ctx context.Context, userID string) ([]model.GardenTask, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.GardenTask), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id string, in service.TaskUpdate) (*service.TaskUpdateResult, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskUpdateResult), args.Error(1)
}

func (m *MockTaskService) Complete(ctx context.Context, id string) (*model.GardenTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GardenTask), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskService) GenerateForPlant(ctx context.Context, userID string, plant model.Plant) (*model.GardenTask, error) {
	args := m.Called(ctx, userID, plant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GardenTask), args.Error(1)
}

func (m *MockTaskService) GenerateFromKnowledgeBase(ctx context.Context, userID, plantID string, entry *model.PlantKnowledgeBase) ([]model.GardenTask, error) {
	args := m.Called(ctx, userID, plantID, entry)
	return args.Get(0).([]model.GardenTask), args.Error(1)
}

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Emit(ctx context.Context, userID, message string, scheduledTime time.Time) (*model.Notification, error) {
	args := m.Called(ctx, userID, message, scheduledTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) Get(ctx context.Context, id string) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWeatherService is a mock implementation of service.WeatherService.
type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Get(ctx context.Context, location string) (model.DayWeather, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(model.DayWeather), args.Error(1)
}

func (m *MockWeatherService) Refresh(ctx context.Context, location string) (model.DayWeather, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(model.DayWeather), args.Error(1)
}

// MockTrackingLogService is a mock implementation of service.TrackingLogService.
type MockTrackingLogService struct {
	mock.Mock
}

func (m *MockTrackingLogService) Create(ctx context.Context, log *model.PlantTrackingLog) (*model.PlantTrackingLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlantTrackingLog), args.Error(1)
}

func (m *MockTrackingLogService) Get(ctx context.Context, id string) (*model.PlantTrackingLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlantTrackingLog), args.Error(1)
}

func (m *MockTrackingLogService) ListByPlant(ctx context.Context, plantID string) ([]model.PlantTrackingLog, error) {
	args := m.Called(ctx, plantID)
	return args.Get(0).([]model.PlantTrackingLog), args.Error(1)
}

func (m *MockTrackingLogService) Replace(ctx context.Context, id string, log *model.PlantTrackingLog) (*model.PlantTrackingLog, error) {
	args := m.Called(ctx, id, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlantTrackingLog), args.Error(1)
}

func (m *MockTrackingLogService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
