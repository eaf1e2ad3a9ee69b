package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

func TestKnowledgeBaseService_AddToGarden(t *testing.T) {
	t.Run("schedules every suggested task", func(t *testing.T) {
		f := newTaskFixture()
		repo := new(MockKnowledgeBaseRepository)
		svc := NewKnowledgeBaseService(repo, f.service)

		repo.On("FindByID", mock.Anything, "kb1").Return(&model.PlantKnowledgeBase{
			ID:   "kb1",
			Name: "Buttercup",
			SuggestedTasks: []model.TaskTemplate{
				{TaskName: "Water Buttercups", TaskType: "Watering", RecurrenceInterval: model.NewInterval(8 * time.Hour)},
			},
		}, nil)
		f.tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *model.GardenTask) bool {
			return task.UserID == "u1" && task.PlantID == "kb1" && task.ScheduledTime.Equal(taskNow.Add(8*time.Hour))
		})).Return(nil).Once()
		f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		created, err := svc.AddToGarden(context.Background(), "u1", "kb1")
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, "Water Buttercups", created[0].TaskName)
		f.tasks.AssertExpectations(t)
		f.notifications.AssertExpectations(t)
	})

	t.Run("unknown entry creates nothing", func(t *testing.T) {
		f := newTaskFixture()
		repo := new(MockKnowledgeBaseRepository)
		svc := NewKnowledgeBaseService(repo, f.service)

		repo.On("FindByID", mock.Anything, "missing").Return(nil, apperrors.ErrKnowledgeBaseNotFound)

		created, err := svc.AddToGarden(context.Background(), "u1", "missing")
		assert.ErrorIs(t, err, apperrors.ErrKnowledgeBaseNotFound)
		assert.Nil(t, created)
		f.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestKnowledgeBaseService_CreateNormalizesEntry(t *testing.T) {
	repo := new(MockKnowledgeBaseRepository)
	svc := NewKnowledgeBaseService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.PlantKnowledgeBase) bool {
		return e.ID == "" && e.SuggestedTasks != nil && len(e.SuggestedTasks) == 0
	})).Return(nil)

	entry, err := svc.Create(context.Background(), &model.PlantKnowledgeBase{ID: "client-chosen", Name: "Mint"})
	require.NoError(t, err)
	assert.Equal(t, "Mint", entry.Name)
	repo.AssertExpectations(t)
}

func TestTrackingLogService_ReplaceUsesPathID(t *testing.T) {
	repo := new(MockTrackingLogRepository)
	svc := NewTrackingLogService(repo)

	repo.On("Replace", mock.Anything, mock.MatchedBy(func(l *model.PlantTrackingLog) bool {
		return l.ID == "log-1" && l.PlantID == "p1"
	})).Return(nil).Once()
	repo.On("Replace", mock.Anything, mock.Anything).Return(apperrors.ErrTrackingLogNotFound).Once()

	got, err := svc.Replace(context.Background(), "log-1", &model.PlantTrackingLog{ID: "other", PlantID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "log-1", got.ID)

	_, err = svc.Replace(context.Background(), "log-2", &model.PlantTrackingLog{PlantID: "p1"})
	assert.ErrorIs(t, err, apperrors.ErrTrackingLogNotFound)
}
