package service

import (
	"context"
	"fmt"
	"time"

	"growmate/internal/model"
	"growmate/internal/repository"
)

// NotificationService creates and reads user notifications.
type NotificationService interface {
	// Emit creates an unread notification. There is no deduplication.
	Emit(ctx context.Context, userID, message string, scheduledTime time.Time) (*model.Notification, error)
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	Get(ctx context.Context, id string) (*model.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// TaskNotificationMessage is the message announcing a newly created task.
func TaskNotificationMessage(taskName string) string {
	return fmt.Sprintf("You have a new task: %s", taskName)
}

func (s *notificationService) Emit(ctx context.Context, userID, message string, scheduledTime time.Time) (*model.Notification, error) {
	n := &model.Notification{
		UserID:        userID,
		Message:       message,
		ScheduledTime: scheduledTime,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	n.ID = ""
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) Get(ctx context.Context, id string) (*model.Notification, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *notificationService) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}
