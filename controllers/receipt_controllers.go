package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type ReceiptController struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewReceiptController(db *gorm.DB, bus *events.Bus) *ReceiptController {
	return &ReceiptController{DB: db, Bus: bus}
}

// UploadReceipt records a supplier receipt with its line items and emits
// receipt.uploaded. Stock is not touched until the receipt is applied.
func (rc *ReceiptController) UploadReceipt(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	userID := c.GetUint("userID")

	var body struct {
		SupplierName string `json:"supplier_name"`
		Items        []struct {
			InventoryItemID uint    `json:"inventory_item_id" binding:"required"`
			Quantity        float64 `json:"quantity" binding:"required,gt=0"`
			UnitPrice       float64 `json:"unit_price"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	receipt := models.Receipt{
		RestaurantID: restaurantID,
		UploadedBy:   userID,
		SupplierName: body.SupplierName,
		Status:       models.ReceiptStatusUploaded,
	}

	var total float64
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
		for _, item := range body.Items {
			total += item.Quantity * item.UnitPrice
			row := models.ReceiptItem{
				ReceiptID:       receipt.ID,
				InventoryItemID: item.InventoryItemID,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return tx.Model(&receipt).Update("total_amount", total).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	receipt.TotalAmount = total

	var uploader models.User
	uploadedBy := "A staff member"
	if err := rc.DB.First(&uploader, userID).Error; err == nil {
		uploadedBy = uploader.Name
	}

	emitErr := rc.Bus.Emit(c.Request.Context(), events.ReceiptUploaded, events.DomainEvent{
		RestaurantID: restaurantID,
		Type:         events.ReceiptUploaded,
		Actor:        actorFromContext(c),
		Payload: map[string]interface{}{
			"receiptId":  receipt.ID,
			"uploadedBy": uploadedBy,
			"total":      total,
		},
		OccurredAt: time.Now(),
	})
	if emitErr != nil {
		utils.RespondError(c, http.StatusInternalServerError, emitErr)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Receipt uploaded", receipt)
}

// ApplyReceipt adds the receipt quantities to inventory stock and emits
// receipt.applied. A receipt can only be applied once.
func (rc *ReceiptController) ApplyReceipt(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("receipt_id"))

	var receipt models.Receipt
	if err := rc.DB.Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		First(&receipt, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if receipt.Status == models.ReceiptStatusApplied {
		utils.RespondError(c, http.StatusConflict, errors.New("receipt already applied"))
		return
	}

	now := time.Now()
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range receipt.Items {
			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND restaurant_id = ?", item.InventoryItemID, restaurantID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&receipt).Updates(map[string]interface{}{
			"status":     models.ReceiptStatusApplied,
			"applied_at": now,
		}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	emitErr := rc.Bus.Emit(c.Request.Context(), events.ReceiptApplied, events.DomainEvent{
		RestaurantID: restaurantID,
		Type:         events.ReceiptApplied,
		Actor:        actorFromContext(c),
		Payload: map[string]interface{}{
			"receiptId": receipt.ID,
			"itemCount": len(receipt.Items),
		},
		OccurredAt: now,
	})
	if emitErr != nil {
		utils.RespondError(c, http.StatusInternalServerError, emitErr)
		return
	}

	receipt.Status = models.ReceiptStatusApplied
	receipt.AppliedAt = &now
	utils.RespondJSON(c, http.StatusOK, "Receipt applied", receipt)
}

// GetReceiptByID returns one receipt with items.
func (rc *ReceiptController) GetReceiptByID(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("receipt_id"))

	var receipt models.Receipt
	if err := rc.DB.Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		First(&receipt, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Receipt detail", receipt)
}

// GetAllReceipts lists the restaurant's receipts.
func (rc *ReceiptController) GetAllReceipts(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var receipts []models.Receipt
	if err := rc.DB.Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All receipts", receipts)
}
