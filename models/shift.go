package models

import "time"

type Shift struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	StartsAt     time.Time `gorm:"not null" json:"starts_at"`
	EndsAt       time.Time `gorm:"not null" json:"ends_at"`
	// Set once the open-shift monitor has already alerted for this shift.
	OpenAlerted bool      `gorm:"not null;default:false" json:"open_alerted"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

type TimeClockEntry struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user"`
	ShiftID      *uint      `json:"shift_id,omitempty"`
	ClockInAt    time.Time  `gorm:"not null" json:"clock_in_at"`
	ClockOutAt   *time.Time `json:"clock_out_at,omitempty"`
	BreakStartAt *time.Time `json:"break_start_at,omitempty"`
	BreakEndAt   *time.Time `json:"break_end_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
