package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/controllers"
	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
)

func setupReceiptRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	bus, _ := setupPipeline(t, db)
	router := newTestRouter()
	ctrl := controllers.NewReceiptController(db, bus)
	auth := router.Group("/", authAs(1, 1, "manager"))
	auth.POST("/receipts", ctrl.UploadReceipt)
	auth.POST("/receipts/:receipt_id/apply", ctrl.ApplyReceipt)
	auth.GET("/receipts/:receipt_id", ctrl.GetReceiptByID)
	return router
}

func TestUploadReceiptNotifies(t *testing.T) {
	db := setupTestDB(t)
	router := setupReceiptRouter(t, db)
	seedRestaurant(t, db, "Warung Tes")
	seedUser(t, db, 1, "Sari", "uploader@example.com", "manager", "secret")

	item := models.InventoryItem{RestaurantID: 1, Name: "Flour", Stock: 2}
	assert.NoError(t, db.Create(&item).Error)

	w := performJSON(t, router, "POST", "/receipts", map[string]interface{}{
		"supplier_name": "CV Sumber Pangan",
		"items": []map[string]interface{}{
			{"inventory_item_id": item.ID, "quantity": 10.0, "unit_price": 2.5},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 25.0, data["total_amount"])
	assert.Equal(t, models.ReceiptStatusUploaded, data["status"])

	notifs := notificationsOfType(t, db, events.ReceiptUploaded)
	assert.Len(t, notifs, 1)
	assert.Equal(t, "Sari uploaded a supplier receipt.", notifs[0].Message)

	// Stock is untouched until the receipt is applied.
	var reloaded models.InventoryItem
	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 2.0, reloaded.Stock)
}

func TestApplyReceiptIncrementsStockOnce(t *testing.T) {
	db := setupTestDB(t)
	router := setupReceiptRouter(t, db)

	item := models.InventoryItem{RestaurantID: 1, Name: "Flour", Stock: 2}
	assert.NoError(t, db.Create(&item).Error)

	receipt := models.Receipt{RestaurantID: 1, UploadedBy: 1, Status: models.ReceiptStatusUploaded}
	assert.NoError(t, db.Create(&receipt).Error)
	assert.NoError(t, db.Create(&models.ReceiptItem{
		ReceiptID:       receipt.ID,
		InventoryItemID: item.ID,
		Quantity:        10,
		UnitPrice:       2.5,
	}).Error)

	url := fmt.Sprintf("/receipts/%d/apply", receipt.ID)
	w := performJSON(t, router, "POST", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.InventoryItem
	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 12.0, reloaded.Stock)

	assert.Len(t, notificationsOfType(t, db, events.ReceiptApplied), 1)

	// Second apply conflicts and leaves stock alone.
	w = performJSON(t, router, "POST", url, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 12.0, reloaded.Stock)
}

func TestUploadReceiptRequiresItems(t *testing.T) {
	db := setupTestDB(t)
	router := setupReceiptRouter(t, db)

	w := performJSON(t, router, "POST", "/receipts", map[string]interface{}{
		"supplier_name": "CV Sumber Pangan",
		"items":         []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
