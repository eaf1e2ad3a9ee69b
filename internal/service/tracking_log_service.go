package service

import (
	"context"
	"fmt"

	"growmate/internal/model"
	"growmate/internal/repository"
)

// TrackingLogService manages plant tracking logs.
type TrackingLogService interface {
	Create(ctx context.Context, log *model.PlantTrackingLog) (*model.PlantTrackingLog, error)
	Get(ctx context.Context, id string) (*model.PlantTrackingLog, error)
	ListByPlant(ctx context.Context, plantID string) ([]model.PlantTrackingLog, error)
	Replace(ctx context.Context, id string, log *model.PlantTrackingLog) (*model.PlantTrackingLog, error)
	Delete(ctx context.Context, id string) error
}

type trackingLogService struct {
	repo repository.TrackingLogRepository
}

// NewTrackingLogService creates a tracking log service.
func NewTrackingLogService(repo repository.TrackingLogRepository) TrackingLogService {
	return &trackingLogService{repo: repo}
}

func (s *trackingLogService) Create(ctx context.Context, log *model.PlantTrackingLog) (*model.PlantTrackingLog, error) {
	log.ID = ""
	if err := s.repo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create tracking log: %w", err)
	}
	return log, nil
}

func (s *trackingLogService) Get(ctx context.Context, id string) (*model.PlantTrackingLog, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *trackingLogService) ListByPlant(ctx context.Context, plantID string) ([]model.PlantTrackingLog, error) {
	return s.repo.ListByPlant(ctx, plantID)
}

func (s *trackingLogService) Replace(ctx context.Context, id string, log *model.PlantTrackingLog) (*model.PlantTrackingLog, error) {
	log.ID = id
	if err := s.repo.Replace(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *trackingLogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
