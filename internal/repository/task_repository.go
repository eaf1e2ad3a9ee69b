package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

// TaskRepository defines garden task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.GardenTask) error
	FindByID(ctx context.Context, id string) (*model.GardenTask, error)
	List(ctx context.Context) ([]model.GardenTask, error)
	ListByUser(ctx context.Context, userID string) ([]model.GardenTask, error)
	Update(ctx context.Context, task *model.GardenTask) error
	// MarkCompleted flips is_completed from false to true. It reports false
	// when the task was already completed, so callers act on the edge only once.
	MarkCompleted(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.GardenTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.GardenTask, error) {
	var task model.GardenTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]model.GardenTask, error) {
	var tasks []model.GardenTask
	if err := r.db.WithContext(ctx).Order("scheduled_time").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]model.GardenTask, error) {
	var tasks []model.GardenTask
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("scheduled_time").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the editable fields. is_completed is never written here.
func (r *taskRepository) Update(ctx context.Context, task *model.GardenTask) error {
	res := r.db.WithContext(ctx).Model(&model.GardenTask{}).
		Where("id = ?", task.ID).
		Select("task_name", "task_type", "plant_id", "scheduled_time", "recurrence_interval", "notes").
		Updates(task)
	return res.Error
}

func (r *taskRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.GardenTask{}).
		Where("id = ? AND is_completed = ?", id, false).
		Update("is_completed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GardenTask{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
