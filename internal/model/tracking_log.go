package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlantTrackingLog is an append-only event record, written when a task
// completes. UserID is the owner of the completed task or of the caller that
// recorded the event.
type PlantTrackingLog struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"userId" gorm:"size:36;index"`
	PlantID   string    `json:"plantId" gorm:"size:36;not null;index"`
	EventDate time.Time `json:"eventDate" gorm:"not null"`
	EventType string    `json:"eventType" gorm:"size:100;not null"`
	Notes     *string   `json:"notes,omitempty" gorm:"type:text"`
	PhotoURL  *string   `json:"photoUrl,omitempty" gorm:"size:512"`
}

// BeforeCreate sets UUID before creating the record.
func (l *PlantTrackingLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
