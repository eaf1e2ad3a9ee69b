package service

import (
	"time"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

// TemplateService serves the built-in garden templates.
type TemplateService interface {
	List() []model.GardenTemplate
	Get(id string) (*model.GardenTemplate, error)
}

type templateService struct {
	templates []model.GardenTemplate
}

// NewTemplateService creates a template service over the built-in templates.
func NewTemplateService() TemplateService {
	return &templateService{templates: builtinTemplates(time.Now().UTC())}
}

func (s *templateService) List() []model.GardenTemplate {
	out := make([]model.GardenTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *templateService) Get(id string) (*model.GardenTemplate, error) {
	for i := range s.templates {
		if s.templates[i].ID == id {
			t := s.templates[i]
			return &t, nil
		}
	}
	return nil, apperrors.ErrTemplateNotFound
}

func builtinTemplates(now time.Time) []model.GardenTemplate {
	return []model.GardenTemplate{
		{
			ID:          "1",
			Name:        "Vegetable Garden",
			Description: "A small garden to grow various vegetables.",
			Plants: []model.PlantTemplate{
				{PlantID: "1", Name: "Tomato", CareInstructions: "Water daily"},
				{PlantID: "2", Name: "Lettuce", CareInstructions: "Water every other day"},
				{PlantID: "3", Name: "Carrot", CareInstructions: "Needs full sun"},
			},
			Layout:    []string{"Row 1: Tomato", "Row 2: Lettuce", "Row 3: Carrot"},
			CreatedAt: now,
		},
		{
			ID:          "2",
			Name:        "Flower Garden",
			Description: "A beautiful flower garden with various blooms.",
			Plants: []model.PlantTemplate{
				{PlantID: "4", Name: "Rose", CareInstructions: "Water twice a week"},
				{PlantID: "5", Name: "Tulip", CareInstructions: "Plant in spring"},
			},
			Layout:    []string{"Row 1: Rose", "Row 2: Tulip"},
			CreatedAt: now,
		},
	}
}
