package models

import "time"

type MenuCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

type Menu struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	RestaurantID uint         `gorm:"not null;index" json:"restaurant_id"`
	CategoryID   uint         `gorm:"not null;index" json:"category_id"`
	Category     MenuCategory `gorm:"foreignKey:CategoryID" json:"category"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Price        float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Available    bool         `gorm:"not null;default:true" json:"available"`
	Description  string       `gorm:"type:text" json:"description"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}
