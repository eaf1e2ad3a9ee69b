package service

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"growmate/internal/model"
	"growmate/internal/repository"
)

// KnowledgeBaseService manages plant reference data.
type KnowledgeBaseService interface {
	List(ctx context.Context) ([]model.PlantKnowledgeBase, error)
	Get(ctx context.Context, id string) (*model.PlantKnowledgeBase, error)
	Create(ctx context.Context, entry *model.PlantKnowledgeBase) (*model.PlantKnowledgeBase, error)
	Replace(ctx context.Context, id string, entry *model.PlantKnowledgeBase) (*model.PlantKnowledgeBase, error)
	Delete(ctx context.Context, id string) error
	// AddToGarden schedules the entry's suggested tasks for userID.
	AddToGarden(ctx context.Context, userID, entryID string) ([]model.GardenTask, error)
}

type knowledgeBaseService struct {
	repo  repository.KnowledgeBaseRepository
	tasks TaskService
}

// NewKnowledgeBaseService creates a knowledge base service.
func NewKnowledgeBaseService(repo repository.KnowledgeBaseRepository, tasks TaskService) KnowledgeBaseService {
	return &knowledgeBaseService{repo: repo, tasks: tasks}
}

func (s *knowledgeBaseService) List(ctx context.Context) ([]model.PlantKnowledgeBase, error) {
	return s.repo.List(ctx)
}

func (s *knowledgeBaseService) Get(ctx context.Context, id string) (*model.PlantKnowledgeBase, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *knowledgeBaseService) Create(ctx context.Context, entry *model.PlantKnowledgeBase) (*model.PlantKnowledgeBase, error) {
	entry.ID = ""
	if entry.SuggestedTasks == nil {
		entry.SuggestedTasks = datatypes.JSONSlice[model.TaskTemplate]{}
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create knowledge base entry: %w", err)
	}
	return entry, nil
}

func (s *knowledgeBaseService) Replace(ctx context.Context, id string, entry *model.PlantKnowledgeBase) (*model.PlantKnowledgeBase, error) {
	entry.ID = id
	if entry.SuggestedTasks == nil {
		entry.SuggestedTasks = datatypes.JSONSlice[model.TaskTemplate]{}
	}
	if err := s.repo.Replace(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *knowledgeBaseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *knowledgeBaseService) AddToGarden(ctx context.Context, userID, entryID string) ([]model.GardenTask, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return s.tasks.GenerateFromKnowledgeBase(ctx, userID, entry.ID, entry)
}
