package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"growmate/internal/model"
	"growmate/internal/service"
)

// TaskHandler handles garden task endpoints.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a task handler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskRequest is a new garden task. A missing scheduledTime defaults
// to now plus the recurrence interval.
type CreateTaskRequest struct {
	UserID             string          `json:"userId"`
	TaskName           string          `json:"taskName" validate:"required,max=255"`
	PlantID            string          `json:"plantId"`
	ScheduledTime      time.Time       `json:"scheduledTime"`
	TaskType           string          `json:"taskType" validate:"max=100"`
	RecurrenceInterval *model.Interval `json:"recurrenceInterval"`
	Notes              *string         `json:"notes"`
}

// UpdateTaskRequest carries task changes. isCompleted can only complete a
// task, never reopen it.
type UpdateTaskRequest struct {
	TaskName           string          `json:"taskName" validate:"max=255"`
	PlantID            string          `json:"plantId"`
	ScheduledTime      *time.Time      `json:"scheduledTime"`
	TaskType           string          `json:"taskType" validate:"max=100"`
	RecurrenceInterval *model.Interval `json:"recurrenceInterval"`
	Notes              *string         `json:"notes"`
	IsCompleted        bool            `json:"isCompleted"`
}

// CompleteTaskResponse is the outcome of completing a task.
type CompleteTaskResponse struct {
	Next *model.GardenTask `json:"nextTask,omitempty"`
}

func (h *TaskHandler) ownedTask(c echo.Context, id string) (*model.GardenTask, error) {
	if _, err := actorFrom(c); err != nil {
		return nil, err
	}
	task, err := h.tasks.Get(c.Request().Context(), id)
	if err != nil {
		return nil, respondError(err)
	}
	if _, err := authorize(c, task.UserID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks godoc
// @Summary List tasks
// @Description Admins see every task, other users their own.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.GardenTask
// @Router /GardenTask [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var tasks []model.GardenTask
	if actor.IsAdmin() {
		tasks, err = h.tasks.List(c.Request().Context())
	} else {
		tasks, err = h.tasks.ListByUser(c.Request().Context(), actor.UserID)
	}
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListByUser godoc
// @Summary List a user's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.GardenTask
// @Failure 403 {object} errors.ErrorResponse
// @Router /GardenTask/by-user/{userId} [get]
func (h *TaskHandler) ListByUser(c echo.Context) error {
	userID := c.Param("userId")
	if _, err := authorize(c, userID); err != nil {
		return err
	}
	tasks, err := h.tasks.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.GardenTask
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /GardenTask/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.ownedTask(c, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body CreateTaskRequest true "Task"
// @Success 201 {object} model.GardenTask
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /GardenTask [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	owner := req.UserID
	if owner == "" {
		owner = actor.UserID
	}
	if _, err := authorize(c, owner); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), &model.GardenTask{
		UserID:             owner,
		TaskName:           req.TaskName,
		PlantID:            req.PlantID,
		ScheduledTime:      req.ScheduledTime.UTC(),
		TaskType:           req.TaskType,
		RecurrenceInterval: req.RecurrenceInterval,
		Notes:              req.Notes,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update task
// @Description Setting isCompleted on an open task completes it: a tracking log is written and recurring tasks schedule their next occurrence.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param task body UpdateTaskRequest true "Changes"
// @Success 200 {object} service.TaskUpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /GardenTask/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	task, err := h.ownedTask(c, c.Param("id"))
	if err != nil {
		return err
	}
	var req UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.tasks.Update(c.Request().Context(), task.ID, service.TaskUpdate{
		TaskName:           req.TaskName,
		TaskType:           req.TaskType,
		PlantID:            req.PlantID,
		ScheduledTime:      req.ScheduledTime,
		RecurrenceInterval: req.RecurrenceInterval,
		Notes:              req.Notes,
		IsCompleted:        req.IsCompleted,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// CompleteTask godoc
// @Summary Complete task
// @Description Completing an already completed task is a no-op.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} CompleteTaskResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /GardenTask/{id}/complete [post]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	task, err := h.ownedTask(c, c.Param("id"))
	if err != nil {
		return err
	}
	next, err := h.tasks.Complete(c.Request().Context(), task.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, CompleteTaskResponse{Next: next})
}

// DeleteTask godoc
// @Summary Delete task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /GardenTask/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	task, err := h.ownedTask(c, c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.Request().Context(), task.ID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
