package models

import "time"

// Supplier receipt statuses.
const (
	ReceiptStatusUploaded = "uploaded"
	ReceiptStatusApplied  = "applied"
)

type Receipt struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	RestaurantID uint          `gorm:"not null;index" json:"restaurant_id"`
	UploadedBy   uint          `gorm:"not null" json:"uploaded_by"`
	SupplierName string        `gorm:"type:varchar(255)" json:"supplier_name"`
	TotalAmount  float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Status       string        `gorm:"type:varchar(20);not null;default:'uploaded'" json:"status"`
	AppliedAt    *time.Time    `json:"applied_at,omitempty"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
	Items        []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items"`
}

type ReceiptItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ReceiptID       uint    `gorm:"not null;index" json:"receipt_id"`
	InventoryItemID uint    `gorm:"not null" json:"inventory_item_id"`
	Quantity        float64 `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice       float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
