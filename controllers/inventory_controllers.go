package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type InventoryController struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewInventoryController(db *gorm.DB, bus *events.Bus) *InventoryController {
	return &InventoryController{DB: db, Bus: bus}
}

// GetAllItems lists the restaurant's inventory.
func (ic *InventoryController) GetAllItems(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var items []models.InventoryItem
	if err := ic.DB.Where("restaurant_id = ?", restaurantID).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory items", items)
}

// CreateItem adds an inventory item.
func (ic *InventoryController) CreateItem(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body struct {
		Name          string  `json:"name" binding:"required"`
		Unit          string  `json:"unit"`
		Stock         float64 `json:"stock"`
		LowStockLevel float64 `json:"low_stock_level"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.InventoryItem{
		RestaurantID:  restaurantID,
		Name:          body.Name,
		Unit:          body.Unit,
		Stock:         body.Stock,
		LowStockLevel: body.LowStockLevel,
	}
	if item.Unit == "" {
		item.Unit = "unit"
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

// AdjustStock applies a stock delta and emits inventory.low_stock when the
// item crosses its threshold from above.
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("item_id"))

	var body struct {
		Delta float64 `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.InventoryItem
	if err := ic.DB.Where("restaurant_id = ?", restaurantID).First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	wasLow := item.LowOnStock()
	item.Stock += body.Delta
	if item.Stock < 0 {
		item.Stock = 0
	}
	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if !wasLow && item.LowOnStock() {
		err := ic.Bus.Emit(c.Request.Context(), events.InventoryLowStock, events.DomainEvent{
			RestaurantID: restaurantID,
			Type:         events.InventoryLowStock,
			Actor:        actorFromContext(c),
			Payload: map[string]interface{}{
				"itemId":   item.ID,
				"itemName": item.Name,
				"stock":    item.Stock,
			},
			OccurredAt: time.Now(),
		})
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", item)
}

// UpdateItem edits name, unit or threshold.
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.InventoryItem
	if err := ic.DB.Where("restaurant_id = ?", restaurantID).First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name          *string  `json:"name"`
		Unit          *string  `json:"unit"`
		LowStockLevel *float64 `json:"low_stock_level"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Unit != nil {
		item.Unit = *body.Unit
	}
	if body.LowStockLevel != nil {
		item.LowStockLevel = *body.LowStockLevel
	}
	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// DeleteItem removes an item.
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("item_id"))

	if err := ic.DB.Where("restaurant_id = ?", restaurantID).
		Delete(&models.InventoryItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", gin.H{"item_id": id})
}
