package models

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

type Subscription struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RestaurantID     uint      `gorm:"not null;uniqueIndex" json:"restaurant_id"`
	Plan             string    `gorm:"type:varchar(50);not null;default:'starter'" json:"plan"`
	Status           string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CurrentPeriodEnd time.Time `gorm:"not null" json:"current_period_end"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

// Expired reports whether the paid period already ran out.
func (s *Subscription) Expired(now time.Time) bool {
	return now.After(s.CurrentPeriodEnd)
}
