package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"growmate/internal/logger"
	"growmate/internal/model"
)

type taskFixture struct {
	tasks         *MockTaskRepository
	logs          *MockTrackingLogRepository
	notifications *MockNotificationRepository
	catalog       *MockPlantCatalog
	events        *countingEvents
	clock         *clock.Mock
	service       TaskService
}

type countingEvents struct {
	origins []string
}

func (e *countingEvents) TaskCreated(origin string) {
	e.origins = append(e.origins, origin)
}

var taskNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		tasks:         new(MockTaskRepository),
		logs:          new(MockTrackingLogRepository),
		notifications: new(MockNotificationRepository),
		catalog:       new(MockPlantCatalog),
		events:        &countingEvents{},
		clock:         clock.NewMock(),
	}
	f.clock.Set(taskNow)
	f.service = NewTaskService(
		f.tasks,
		f.logs,
		NewNotificationService(f.notifications),
		f.catalog,
		f.events,
		f.clock,
		logger.NewNop(),
	)
	return f
}

func recurringTask(interval string) *model.GardenTask {
	notes := "check the soil"
	task := &model.GardenTask{
		ID:            "t1",
		UserID:        "u1",
		TaskName:      "Water Basil",
		PlantID:       "p1",
		ScheduledTime: taskNow.Add(-time.Hour),
		TaskType:      model.TaskTypeWatering,
		Notes:         &notes,
	}
	if interval != "" {
		iv, err := model.ParseInterval(interval)
		if err != nil {
			panic(err)
		}
		task.RecurrenceInterval = &iv
	}
	return task
}

func TestTaskService_CompleteRecurring(t *testing.T) {
	f := newTaskFixture()
	task := recurringTask("01:00:00")

	f.tasks.On("FindByID", mock.Anything, "t1").Return(task, nil).Once()
	f.tasks.On("MarkCompleted", mock.Anything, "t1").Return(true, nil).Once()
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l *model.PlantTrackingLog) bool {
		return l.PlantID == "p1" && l.UserID == "u1" && l.EventType == model.TaskTypeWatering &&
			l.EventDate.Equal(taskNow) && l.Notes != nil && *l.Notes == "check the soil"
	})).Return(nil).Once()
	f.tasks.On("Create", mock.Anything, mock.MatchedBy(func(next *model.GardenTask) bool {
		return next.ID == "" && !next.IsCompleted &&
			next.TaskName == "Water Basil" && next.PlantID == "p1" && next.UserID == "u1" &&
			next.ScheduledTime.Equal(taskNow.Add(time.Hour)) &&
			next.RecurrenceInterval != nil && next.RecurrenceInterval.Duration() == time.Hour
	})).Return(nil).Once()
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == "u1" && n.Message == "You have a new task: Water Basil" &&
			n.ScheduledTime.Equal(taskNow.Add(time.Hour)) && !n.IsRead
	})).Return(nil).Once()

	next, err := f.service.Complete(context.Background(), "t1")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, taskNow.Add(time.Hour), next.ScheduledTime)
	assert.True(t, task.IsCompleted)
	assert.Equal(t, []string{"recurrence"}, f.events.origins)

	t.Run("second completion is a no-op", func(t *testing.T) {
		f.tasks.On("FindByID", mock.Anything, "t1").Return(task, nil).Once()

		next, err := f.service.Complete(context.Background(), "t1")
		require.NoError(t, err)
		assert.Nil(t, next)
	})

	f.tasks.AssertNumberOfCalls(t, "Create", 1)
	f.tasks.AssertNumberOfCalls(t, "MarkCompleted", 1)
	f.logs.AssertNumberOfCalls(t, "Create", 1)
	f.notifications.AssertNumberOfCalls(t, "Create", 1)
	f.tasks.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func TestTaskService_CompleteLosesRace(t *testing.T) {
	f := newTaskFixture()
	task := recurringTask("01:00:00")

	// Read before a concurrent writer completed it; the guarded update wins nothing.
	f.tasks.On("FindByID", mock.Anything, "t1").Return(task, nil)
	f.tasks.On("MarkCompleted", mock.Anything, "t1").Return(false, nil)

	next, err := f.service.Complete(context.Background(), "t1")
	require.NoError(t, err)
	assert.Nil(t, next)
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskService_CompleteNonRecurring(t *testing.T) {
	for _, interval := range []string{"", "00:00:00"} {
		t.Run("interval="+interval, func(t *testing.T) {
			f := newTaskFixture()
			task := recurringTask(interval)

			f.tasks.On("FindByID", mock.Anything, "t1").Return(task, nil)
			f.tasks.On("MarkCompleted", mock.Anything, "t1").Return(true, nil)
			f.logs.On("Create", mock.Anything, mock.AnythingOfType("*model.PlantTrackingLog")).Return(nil).Once()

			next, err := f.service.Complete(context.Background(), "t1")
			require.NoError(t, err)
			assert.Nil(t, next)
			f.logs.AssertNumberOfCalls(t, "Create", 1)
			f.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskService_UpdateCompletes(t *testing.T) {
	f := newTaskFixture()
	task := recurringTask("2.00:00:00")

	f.tasks.On("FindByID", mock.Anything, "t1").Return(task, nil)
	f.tasks.On("Update", mock.Anything, task).Return(nil)
	f.tasks.On("MarkCompleted", mock.Anything, "t1").Return(true, nil)
	f.logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Update(context.Background(), "t1", TaskUpdate{TaskName: "Deep water", IsCompleted: true})
	require.NoError(t, err)
	assert.Equal(t, "Deep water", result.Task.TaskName)
	assert.True(t, result.Task.IsCompleted)
	require.NotNil(t, result.Next)
	assert.Equal(t, taskNow.Add(48*time.Hour), result.Next.ScheduledTime)
	assert.Equal(t, "Deep water", result.Next.TaskName)
}

func TestTaskService_CreateDefaultsScheduledTime(t *testing.T) {
	f := newTaskFixture()
	f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	task, err := f.service.Create(context.Background(), &model.GardenTask{
		ID:                 "client-chosen",
		UserID:             "u1",
		TaskName:           "Prune",
		IsCompleted:        true,
		RecurrenceInterval: model.NewInterval(3 * time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, task.ID)
	assert.False(t, task.IsCompleted)
	assert.Equal(t, taskNow.Add(3*time.Hour), task.ScheduledTime)
	assert.Equal(t, []string{"manual"}, f.events.origins)
}

func TestWateringInterval(t *testing.T) {
	tests := []struct {
		classification string
		expected       time.Duration
	}{
		{"Frequent", 24 * time.Hour},
		{"frequent", 24 * time.Hour},
		{"Average", 48 * time.Hour},
		{"Minimum", 72 * time.Hour},
		{"None", 72 * time.Hour},
		{"", 72 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.classification, func(t *testing.T) {
			assert.Equal(t, tt.expected, WateringInterval(tt.classification))
		})
	}
}

func TestTaskService_GenerateForPlant(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*MockPlantCatalog)
		plant    model.Plant
		expected time.Duration
	}{
		{
			name: "frequent watering",
			setup: func(m *MockPlantCatalog) {
				m.On("PlantDetails", mock.Anything, "42").Return(model.PlantData{ID: 42, Watering: "Frequent"}, nil)
			},
			plant:    model.Plant{ID: "p1", Name: "Basil", APIPlantID: "42"},
			expected: 24 * time.Hour,
		},
		{
			name: "average watering",
			setup: func(m *MockPlantCatalog) {
				m.On("PlantDetails", mock.Anything, "42").Return(model.PlantData{ID: 42, Watering: "Average"}, nil)
			},
			plant:    model.Plant{ID: "p1", Name: "Basil", APIPlantID: "42"},
			expected: 48 * time.Hour,
		},
		{
			name: "catalog failure falls back to default",
			setup: func(m *MockPlantCatalog) {
				m.On("PlantDetails", mock.Anything, "42").Return(model.PlantData{}, errors.New("upstream down"))
			},
			plant:    model.Plant{ID: "p1", Name: "Basil", APIPlantID: "42"},
			expected: 72 * time.Hour,
		},
		{
			name:     "no catalog id",
			setup:    func(m *MockPlantCatalog) {},
			plant:    model.Plant{ID: "p1", Name: "Basil"},
			expected: 72 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTaskFixture()
			tt.setup(f.catalog)
			f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
			f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

			task, err := f.service.GenerateForPlant(context.Background(), "u1", tt.plant)
			require.NoError(t, err)
			assert.Equal(t, "Water Basil", task.TaskName)
			assert.Equal(t, model.TaskTypeWatering, task.TaskType)
			assert.Equal(t, "p1", task.PlantID)
			assert.Equal(t, "u1", task.UserID)
			assert.Equal(t, taskNow.Add(tt.expected), task.ScheduledTime)
			require.NotNil(t, task.RecurrenceInterval)
			assert.Equal(t, tt.expected, task.RecurrenceInterval.Duration())
			f.catalog.AssertExpectations(t)
		})
	}
}

func TestTaskService_GenerateFromKnowledgeBase(t *testing.T) {
	f := newTaskFixture()
	f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	entry := &model.PlantKnowledgeBase{
		ID:        "kb1",
		Name:      "Rose",
		SuggestedTasks: []model.TaskTemplate{
			{TaskName: "Water Rose", TaskType: "Watering", RecurrenceInterval: model.NewInterval(48 * time.Hour)},
			{TaskName: "Feed Rose", TaskType: "Fertilizing"},
		},
	}

	created, err := f.service.GenerateFromKnowledgeBase(context.Background(), "u1", "kb1", entry)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, taskNow.Add(48*time.Hour), created[0].ScheduledTime)
	assert.Equal(t, taskNow, created[1].ScheduledTime)
	assert.Equal(t, "kb1", created[1].PlantID)
	assert.Equal(t, []string{"knowledge_base", "knowledge_base"}, f.events.origins)
}
