package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

// GardenRepository defines garden persistence operations.
type GardenRepository interface {
	Create(ctx context.Context, garden *model.Garden) error
	FindByID(ctx context.Context, id string) (*model.Garden, error)
	List(ctx context.Context) ([]model.Garden, error)
	ListByUser(ctx context.Context, userID string) ([]model.Garden, error)
	// Replace overwrites the whole document without a version check.
	Replace(ctx context.Context, garden *model.Garden) error
	// UpdatePlants writes plants only if the stored version still equals
	// expectedVersion, bumping the version. It reports whether the write applied.
	UpdatePlants(ctx context.Context, id string, expectedVersion int, plants []model.Plant) (bool, error)
	Delete(ctx context.Context, id string) error
}

type gardenRepository struct {
	db *gorm.DB
}

// NewGardenRepository creates a new garden repository.
func NewGardenRepository(db *gorm.DB) GardenRepository {
	return &gardenRepository{db: db}
}

func (r *gardenRepository) Create(ctx context.Context, garden *model.Garden) error {
	return r.db.WithContext(ctx).Create(garden).Error
}

func (r *gardenRepository) FindByID(ctx context.Context, id string) (*model.Garden, error) {
	var garden model.Garden
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&garden).Error; err != nil {
		return nil, translate(err, apperrors.ErrGardenNotFound)
	}
	return &garden, nil
}

func (r *gardenRepository) List(ctx context.Context) ([]model.Garden, error) {
	var gardens []model.Garden
	if err := r.db.WithContext(ctx).Order("created_at").Find(&gardens).Error; err != nil {
		return nil, err
	}
	return gardens, nil
}

func (r *gardenRepository) ListByUser(ctx context.Context, userID string) ([]model.Garden, error) {
	var gardens []model.Garden
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&gardens).Error; err != nil {
		return nil, err
	}
	return gardens, nil
}

func (r *gardenRepository) Replace(ctx context.Context, garden *model.Garden) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Garden{}).Where("id = ?", garden.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrGardenNotFound
	}
	return r.db.WithContext(ctx).Save(garden).Error
}

func (r *gardenRepository) UpdatePlants(ctx context.Context, id string, expectedVersion int, plants []model.Plant) (bool, error) {
	if plants == nil {
		plants = []model.Plant{}
	}
	res := r.db.WithContext(ctx).Model(&model.Garden{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"plants":  datatypes.JSONSlice[model.Plant](plants),
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gardenRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Garden{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGardenNotFound
	}
	return nil
}
