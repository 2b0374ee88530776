package models

import (
	"time"
)

type Notification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Type         string    `gorm:"type:varchar(64);not null" json:"type"`
	Severity     string    `gorm:"type:varchar(16);not null" json:"severity"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Metadata     string    `gorm:"type:text;not null;default:'{}'" json:"metadata"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

type NotificationRecipient struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	NotificationID uint      `gorm:"not null;index" json:"notification_id"`
	RestaurantID   uint      `gorm:"not null;index" json:"restaurant_id"`
	Kind           string    `gorm:"type:varchar(16);not null" json:"kind"` // restaurant, role, user
	Role           *string   `gorm:"type:varchar(32)" json:"role,omitempty"`
	UserID         *uint     `gorm:"index" json:"user_id,omitempty"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}
