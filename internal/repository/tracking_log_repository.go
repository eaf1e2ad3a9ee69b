package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

// TrackingLogRepository defines plant tracking log persistence operations.
type TrackingLogRepository interface {
	Create(ctx context.Context, log *model.PlantTrackingLog) error
	FindByID(ctx context.Context, id string) (*model.PlantTrackingLog, error)
	ListByPlant(ctx context.Context, plantID string) ([]model.PlantTrackingLog, error)
	Replace(ctx context.Context, log *model.PlantTrackingLog) error
	Delete(ctx context.Context, id string) error
}

type trackingLogRepository struct {
	db *gorm.DB
}

// NewTrackingLogRepository creates a new tracking log repository.
func NewTrackingLogRepository(db *gorm.DB) TrackingLogRepository {
	return &trackingLogRepository{db: db}
}

func (r *trackingLogRepository) Create(ctx context.Context, log *model.PlantTrackingLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *trackingLogRepository) FindByID(ctx context.Context, id string) (*model.PlantTrackingLog, error) {
	var log model.PlantTrackingLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, translate(err, apperrors.ErrTrackingLogNotFound)
	}
	return &log, nil
}

func (r *trackingLogRepository) ListByPlant(ctx context.Context, plantID string) ([]model.PlantTrackingLog, error) {
	var logs []model.PlantTrackingLog
	if err := r.db.WithContext(ctx).Where("plant_id = ?", plantID).Order("event_date").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *trackingLogRepository) Replace(ctx context.Context, log *model.PlantTrackingLog) error {
	if _, err := r.FindByID(ctx, log.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *trackingLogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PlantTrackingLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTrackingLogNotFound
	}
	return nil
}
