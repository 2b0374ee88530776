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

func setupInventoryRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	bus, _ := setupPipeline(t, db)
	router := newTestRouter()
	ctrl := controllers.NewInventoryController(db, bus)
	auth := router.Group("/", authAs(1, 1, "manager"))
	auth.POST("/inventory", ctrl.CreateItem)
	auth.PATCH("/inventory/:item_id/stock", ctrl.AdjustStock)
	auth.GET("/inventory", ctrl.GetAllItems)
	return router
}

func TestAdjustStockAlertsOnThresholdCrossing(t *testing.T) {
	db := setupTestDB(t)
	router := setupInventoryRouter(t, db)

	item := models.InventoryItem{RestaurantID: 1, Name: "Chicken Wings", Stock: 10, LowStockLevel: 5}
	assert.NoError(t, db.Create(&item).Error)
	url := fmt.Sprintf("/inventory/%d/stock", item.ID)

	// Still above threshold: no alert.
	w := performJSON(t, router, "PATCH", url, map[string]interface{}{"delta": -3})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, notificationsOfType(t, db, events.InventoryLowStock))

	// Crosses the threshold: exactly one alert.
	w = performJSON(t, router, "PATCH", url, map[string]interface{}{"delta": -3})
	assert.Equal(t, http.StatusOK, w.Code)

	notifs := notificationsOfType(t, db, events.InventoryLowStock)
	assert.Len(t, notifs, 1)
	assert.Equal(t, "Low Stock", notifs[0].Title)
	assert.Equal(t, "Chicken Wings is low on stock.", notifs[0].Message)
	assert.Equal(t, "warning", notifs[0].Severity)

	// Already low: further decrements stay quiet.
	w = performJSON(t, router, "PATCH", url, map[string]interface{}{"delta": -1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, notificationsOfType(t, db, events.InventoryLowStock), 1)
}

func TestLowStockAlertTargetsOwnerAndManager(t *testing.T) {
	db := setupTestDB(t)
	router := setupInventoryRouter(t, db)

	item := models.InventoryItem{RestaurantID: 1, Name: "Flour", Stock: 6, LowStockLevel: 5}
	assert.NoError(t, db.Create(&item).Error)

	w := performJSON(t, router, "PATCH", fmt.Sprintf("/inventory/%d/stock", item.ID),
		map[string]interface{}{"delta": -2})
	assert.Equal(t, http.StatusOK, w.Code)

	notifs := notificationsOfType(t, db, events.InventoryLowStock)
	assert.Len(t, notifs, 1)

	var roles []string
	assert.NoError(t, db.Model(&models.NotificationRecipient{}).
		Where("notification_id = ?", notifs[0].ID).
		Order("id").
		Pluck("role", &roles).Error)
	assert.Equal(t, []string{"owner", "manager"}, roles)
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	router := setupInventoryRouter(t, db)

	item := models.InventoryItem{RestaurantID: 1, Name: "Rice", Stock: 2}
	assert.NoError(t, db.Create(&item).Error)

	w := performJSON(t, router, "PATCH", fmt.Sprintf("/inventory/%d/stock", item.ID),
		map[string]interface{}{"delta": -10})
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.InventoryItem
	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 0.0, reloaded.Stock)
}

func TestCreateItemDefaultsUnit(t *testing.T) {
	db := setupTestDB(t)
	router := setupInventoryRouter(t, db)

	w := performJSON(t, router, "POST", "/inventory", map[string]interface{}{
		"name":  "Sugar",
		"stock": 4.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "unit", data["unit"])
}
