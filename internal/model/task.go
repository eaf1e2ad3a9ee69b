package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskTypeWatering is the task type generated for newly added plants.
const TaskTypeWatering = "Watering"

// GardenTask is a scheduled, optionally recurring action tied to a plant.
// Completion is one-way: once IsCompleted is true it is never reset.
type GardenTask struct {
	ID                 string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             string    `json:"userId" gorm:"type:char(36);not null;index"`
	TaskName           string    `json:"taskName" gorm:"size:255;not null"`
	PlantID            string    `json:"plantId" gorm:"size:36;index"`
	ScheduledTime      time.Time `json:"scheduledTime" gorm:"not null;index"`
	IsCompleted        bool      `json:"isCompleted" gorm:"not null;default:false;index"`
	TaskType           string    `json:"taskType" gorm:"size:100"`
	RecurrenceInterval *Interval `json:"recurrenceInterval,omitempty" gorm:"type:bigint"`
	Notes              *string   `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt          time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (t *GardenTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Recurs reports whether completing the task spawns a next occurrence.
func (t *GardenTask) Recurs() bool {
	return t.RecurrenceInterval != nil && *t.RecurrenceInterval > 0
}
