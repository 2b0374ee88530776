package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey"`
	RestaurantID uint       `gorm:"not null;index"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Name         string     `gorm:"type:varchar(255); not null"`
	Email        string     `gorm:"type:varchar(255); unique;not null"`
	Phone        string     `gorm:"type:varchar(32)"`
	Password     string     `gorm:"type:varchar(255); not null"`
	Role         string     `gorm:"type:varchar(32); not null"` // owner, manager, staff, chef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
