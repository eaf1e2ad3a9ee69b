package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a message shown to a user, typically announcing a task.
type Notification struct {
	ID            string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        string    `json:"userId" gorm:"type:char(36);not null;index"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	IsRead        bool      `json:"isRead" gorm:"not null;default:false"`
	ScheduledTime time.Time `json:"scheduledTime" gorm:"not null;index"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
