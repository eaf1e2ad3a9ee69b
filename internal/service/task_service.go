package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"growmate/internal/logger"
	"growmate/internal/model"
	"growmate/internal/repository"
)

const day = 24 * time.Hour

// WateringInterval derives the default watering recurrence from a catalog
// watering classification: "Frequent" is daily, "Average" every two days and
// anything else every three days.
func WateringInterval(classification string) time.Duration {
	switch {
	case strings.EqualFold(strings.TrimSpace(classification), "Frequent"):
		return day
	case strings.EqualFold(strings.TrimSpace(classification), "Average"):
		return 2 * day
	default:
		return 3 * day
	}
}

// PlantCatalog resolves external catalog entries for plants.
type PlantCatalog interface {
	PlantDetails(ctx context.Context, id string) (model.PlantData, error)
}

// TaskEvents receives task lifecycle counters.
type TaskEvents interface {
	TaskCreated(origin string)
}

// TaskUpdate carries the editable fields of a task. IsCompleted only ever
// requests the false to true transition.
type TaskUpdate struct {
	TaskName           string
	TaskType           string
	PlantID            string
	ScheduledTime      *time.Time
	RecurrenceInterval *model.Interval
	Notes              *string
	IsCompleted        bool
}

// TaskUpdateResult is the outcome of an update, including the next occurrence
// when the update completed a recurring task.
type TaskUpdateResult struct {
	Task *model.GardenTask `json:"task"`
	Next *model.GardenTask `json:"nextTask,omitempty"`
}

// TaskService manages garden tasks and their generation.
type TaskService interface {
	Create(ctx context.Context, task *model.GardenTask) (*model.GardenTask, error)
	Get(ctx context.Context, id string) (*model.GardenTask, error)
	List(ctx context.Context) ([]model.GardenTask, error)
	ListByUser(ctx context.Context, userID string) ([]model.GardenTask, error)
	Update(ctx context.Context, id string, in TaskUpdate) (*TaskUpdateResult, error)
	// Complete performs the completion transition. It returns the next
	// occurrence for recurring tasks and nil otherwise, including when the
	// task was already completed.
	Complete(ctx context.Context, id string) (*model.GardenTask, error)
	Delete(ctx context.Context, id string) error
	// GenerateForPlant schedules the default watering task for a plant just
	// added to a garden.
	GenerateForPlant(ctx context.Context, userID string, plant model.Plant) (*model.GardenTask, error)
	// GenerateFromKnowledgeBase schedules one task per suggested template.
	GenerateFromKnowledgeBase(ctx context.Context, userID, plantID string, entry *model.PlantKnowledgeBase) ([]model.GardenTask, error)
}

type taskService struct {
	tasks         repository.TaskRepository
	logs          repository.TrackingLogRepository
	notifications NotificationService
	catalog       PlantCatalog
	events        TaskEvents
	clock         clock.Clock
	logger        *logger.Logger
}

// NewTaskService creates a task service.
func NewTaskService(
	tasks repository.TaskRepository,
	logs repository.TrackingLogRepository,
	notifications NotificationService,
	catalog PlantCatalog,
	events TaskEvents,
	clk clock.Clock,
	log *logger.Logger,
) TaskService {
	if clk == nil {
		clk = clock.New()
	}
	return &taskService{
		tasks:         tasks,
		logs:          logs,
		notifications: notifications,
		catalog:       catalog,
		events:        events,
		clock:         clk,
		logger:        log.WithComponent("tasks"),
	}
}

func (s *taskService) Create(ctx context.Context, task *model.GardenTask) (*model.GardenTask, error) {
	task.ID = ""
	task.IsCompleted = false
	if task.ScheduledTime.IsZero() {
		var interval time.Duration
		if task.RecurrenceInterval != nil {
			interval = task.RecurrenceInterval.Duration()
		}
		task.ScheduledTime = s.clock.Now().UTC().Add(interval)
	}
	if err := s.insert(ctx, task, "manual"); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*model.GardenTask, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]model.GardenTask, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) ListByUser(ctx context.Context, userID string) ([]model.GardenTask, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, id string, in TaskUpdate) (*TaskUpdateResult, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.TaskName != "" {
		task.TaskName = in.TaskName
	}
	if in.TaskType != "" {
		task.TaskType = in.TaskType
	}
	if in.PlantID != "" {
		task.PlantID = in.PlantID
	}
	if in.ScheduledTime != nil {
		task.ScheduledTime = in.ScheduledTime.UTC()
	}
	if in.RecurrenceInterval != nil {
		task.RecurrenceInterval = in.RecurrenceInterval
	}
	if in.Notes != nil {
		task.Notes = in.Notes
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	result := &TaskUpdateResult{Task: task}
	if in.IsCompleted && !task.IsCompleted {
		next, err := s.complete(ctx, task)
		if err != nil {
			return nil, err
		}
		result.Next = next
	}
	return result, nil
}

func (s *taskService) Complete(ctx context.Context, id string) (*model.GardenTask, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return nil, nil
	}
	return s.complete(ctx, task)
}

// complete acts only if this call performed the false to true transition.
func (s *taskService) complete(ctx context.Context, task *model.GardenTask) (*model.GardenTask, error) {
	changed, err := s.tasks.MarkCompleted(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("mark task completed: %w", err)
	}
	task.IsCompleted = true
	if !changed {
		return nil, nil
	}

	now := s.clock.Now().UTC()
	entry := &model.PlantTrackingLog{
		UserID:    task.UserID,
		PlantID:   task.PlantID,
		EventDate: now,
		EventType: task.TaskType,
		Notes:     task.Notes,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create tracking log: %w", err)
	}

	if !task.Recurs() {
		return nil, nil
	}

	interval := *task.RecurrenceInterval
	next := &model.GardenTask{
		UserID:             task.UserID,
		TaskName:           task.TaskName,
		PlantID:            task.PlantID,
		ScheduledTime:      now.Add(interval.Duration()),
		TaskType:           task.TaskType,
		RecurrenceInterval: &interval,
		Notes:              task.Notes,
	}
	if err := s.insert(ctx, next, "recurrence"); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) GenerateForPlant(ctx context.Context, userID string, plant model.Plant) (*model.GardenTask, error) {
	classification := ""
	if plant.APIPlantID != "" && s.catalog != nil {
		data, err := s.catalog.PlantDetails(ctx, plant.APIPlantID)
		if err != nil {
			s.logger.WithError(err).Warnw("catalog lookup failed, using default watering interval",
				"plant_id", plant.ID, "api_plant_id", plant.APIPlantID)
		} else {
			classification = data.Watering
		}
	}

	name := plant.Name
	if name == "" {
		name = "plant"
	}
	interval := model.Interval(WateringInterval(classification))
	task := &model.GardenTask{
		UserID:             userID,
		TaskName:           fmt.Sprintf("Water %s", name),
		PlantID:            plant.ID,
		ScheduledTime:      s.clock.Now().UTC().Add(interval.Duration()),
		TaskType:           model.TaskTypeWatering,
		RecurrenceInterval: &interval,
	}
	if err := s.insert(ctx, task, "plant"); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GenerateFromKnowledgeBase(ctx context.Context, userID, plantID string, entry *model.PlantKnowledgeBase) ([]model.GardenTask, error) {
	now := s.clock.Now().UTC()
	created := make([]model.GardenTask, 0, len(entry.SuggestedTasks))
	for _, tmpl := range entry.SuggestedTasks {
		var offset time.Duration
		if tmpl.RecurrenceInterval != nil {
			offset = tmpl.RecurrenceInterval.Duration()
		}
		task := &model.GardenTask{
			UserID:             userID,
			TaskName:           tmpl.TaskName,
			PlantID:            plantID,
			ScheduledTime:      now.Add(offset),
			TaskType:           tmpl.TaskType,
			RecurrenceInterval: tmpl.RecurrenceInterval,
			Notes:              tmpl.Notes,
		}
		if err := s.insert(ctx, task, "knowledge_base"); err != nil {
			return created, err
		}
		created = append(created, *task)
	}
	return created, nil
}

// insert persists a task and emits its companion notification. The two
// writes are independent; a failed notification is returned after the task
// already exists.
func (s *taskService) insert(ctx context.Context, task *model.GardenTask, origin string) error {
	if err := s.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	if s.events != nil {
		s.events.TaskCreated(origin)
	}
	if _, err := s.notifications.Emit(ctx, task.UserID, TaskNotificationMessage(task.TaskName), task.ScheduledTime); err != nil {
		return err
	}
	return nil
}
