package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the authorization role carried in access tokens.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User represents a registered gardener or administrator.
type User struct {
	ID                          string     `json:"id" gorm:"type:char(36);primaryKey"`
	Username                    string     `json:"username" gorm:"size:255;not null"`
	Email                       string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash                string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role                        Role       `json:"role" gorm:"type:varchar(20);not null;default:'User';index"`
	PasswordResetToken          *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiration        *time.Time `json:"-"`
	EmailConfirmationToken      *string    `json:"-" gorm:"size:64;index"`
	EmailConfirmationExpiration *time.Time `json:"-"`
	IsEmailConfirmed            bool       `json:"isEmailConfirmed" gorm:"not null;default:false"`
	CreatedAt                   time.Time  `json:"createdAt"`
	UpdatedAt                   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
