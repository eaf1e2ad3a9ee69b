package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlantingSeason names the season a species is usually planted in.
type PlantingSeason string

const (
	SeasonSpring PlantingSeason = "Spring"
	SeasonSummer PlantingSeason = "Summer"
	SeasonAutumn PlantingSeason = "Autumn"
	SeasonWinter PlantingSeason = "Winter"
)

// TaskTemplate is a suggested task attached to a knowledge base entry.
type TaskTemplate struct {
	TaskName           string    `json:"taskName" validate:"required"`
	TaskType           string    `json:"taskType" validate:"required"`
	RecurrenceInterval *Interval `json:"recurrenceInterval,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
}

// PlantKnowledgeBase is read-mostly reference data about a species.
type PlantKnowledgeBase struct {
	ID                    string                           `json:"id" gorm:"type:char(36);primaryKey"`
	Name                  string                           `json:"name" gorm:"size:255;not null;index"`
	Species               string                           `json:"species" gorm:"size:255"`
	Description           string                           `json:"description" gorm:"type:text"`
	SoilRequirements      string                           `json:"soilRequirements" gorm:"size:255"`
	LightRequirements     string                           `json:"lightRequirements" gorm:"size:255"`
	WateringInterval      Interval                         `json:"wateringInterval" gorm:"type:bigint"`
	WateringIntensity     string                           `json:"wateringIntensity" gorm:"size:50"`
	TypicalPlantingSeason PlantingSeason                   `json:"typicalPlantingSeason" gorm:"size:20"`
	ImageURL              *string                          `json:"imageUrl,omitempty" gorm:"size:512"`
	SuggestedTasks        datatypes.JSONSlice[TaskTemplate] `json:"suggestedTasks" gorm:"type:json"`
	CreatedAt             time.Time                        `json:"createdAt"`
	UpdatedAt             time.Time                        `json:"updatedAt"`
}

// TableName keeps the singular collection name.
func (PlantKnowledgeBase) TableName() string {
	return "plant_knowledge_base"
}

// BeforeCreate sets UUID before creating the record.
func (k *PlantKnowledgeBase) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.SuggestedTasks == nil {
		k.SuggestedTasks = datatypes.JSONSlice[TaskTemplate]{}
	}
	return nil
}
