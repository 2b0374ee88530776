package models

import "time"

type InventoryItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RestaurantID  uint      `gorm:"not null;index" json:"restaurant_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit          string    `gorm:"type:varchar(32);not null;default:'unit'" json:"unit"`
	Stock         float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"stock"`
	LowStockLevel float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"low_stock_level"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// LowOnStock reports whether the current stock sits at or below the threshold.
func (i *InventoryItem) LowOnStock() bool {
	return i.LowStockLevel > 0 && i.Stock <= i.LowStockLevel
}
