package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

// KnowledgeBaseRepository defines plant knowledge base persistence operations.
type KnowledgeBaseRepository interface {
	Create(ctx context.Context, entry *model.PlantKnowledgeBase) error
	FindByID(ctx context.Context, id string) (*model.PlantKnowledgeBase, error)
	FindByName(ctx context.Context, name string) (*model.PlantKnowledgeBase, error)
	List(ctx context.Context) ([]model.PlantKnowledgeBase, error)
	Replace(ctx context.Context, entry *model.PlantKnowledgeBase) error
	Delete(ctx context.Context, id string) error
}

type knowledgeBaseRepository struct {
	db *gorm.DB
}

// NewKnowledgeBaseRepository creates a new knowledge base repository.
func NewKnowledgeBaseRepository(db *gorm.DB) KnowledgeBaseRepository {
	return &knowledgeBaseRepository{db: db}
}

func (r *knowledgeBaseRepository) Create(ctx context.Context, entry *model.PlantKnowledgeBase) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *knowledgeBaseRepository) FindByID(ctx context.Context, id string) (*model.PlantKnowledgeBase, error) {
	var entry model.PlantKnowledgeBase
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, translate(err, apperrors.ErrKnowledgeBaseNotFound)
	}
	return &entry, nil
}

func (r *knowledgeBaseRepository) FindByName(ctx context.Context, name string) (*model.PlantKnowledgeBase, error) {
	var entry model.PlantKnowledgeBase
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&entry).Error; err != nil {
		return nil, translate(err, apperrors.ErrKnowledgeBaseNotFound)
	}
	return &entry, nil
}

func (r *knowledgeBaseRepository) List(ctx context.Context) ([]model.PlantKnowledgeBase, error) {
	var entries []model.PlantKnowledgeBase
	if err := r.db.WithContext(ctx).Order("name").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *knowledgeBaseRepository) Replace(ctx context.Context, entry *model.PlantKnowledgeBase) error {
	if _, err := r.FindByID(ctx, entry.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *knowledgeBaseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PlantKnowledgeBase{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrKnowledgeBaseNotFound
	}
	return nil
}
