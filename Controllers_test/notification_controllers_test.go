package Controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/controllers"
	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
)

func setupNotificationRouter(t *testing.T, db *gorm.DB, role string) (*gin.Engine, *events.Bus) {
	bus, store := setupPipeline(t, db)
	router := newTestRouter()
	ctrl := controllers.NewNotificationController(db, store)
	auth := router.Group("/", authAs(1, 1, role))
	auth.GET("/notifications", ctrl.GetNotifications)
	auth.GET("/notifications/unread", ctrl.GetUnreadCount)
	auth.GET("/notifications/:notif_id", ctrl.GetNotificationByID)
	auth.PATCH("/notifications/:notif_id/read", ctrl.MarkRead)
	return router, bus
}

func emitEvent(t *testing.T, bus *events.Bus, eventType string, payload map[string]interface{}) {
	err := bus.Emit(context.Background(), eventType, events.DomainEvent{
		RestaurantID: 1,
		Type:         eventType,
		Actor:        "system",
		Payload:      payload,
		OccurredAt:   time.Now(),
	})
	assert.NoError(t, err)
}

func TestGetNotificationsFiltersByRole(t *testing.T) {
	db := setupTestDB(t)
	router, bus := setupNotificationRouter(t, db, "staff")

	// Broadcast, visible to everyone.
	emitEvent(t, bus, events.OrderCreatedWeb, map[string]interface{}{"orderId": 1})
	// Owner/manager only.
	emitEvent(t, bus, events.InventoryLowStock, map[string]interface{}{"itemName": "Flour"})

	w := performJSON(t, router, "GET", "/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, events.OrderCreatedWeb, first["type"])
}

func TestGetNotificationsAsManagerSeesRoleAlerts(t *testing.T) {
	db := setupTestDB(t)
	router, bus := setupNotificationRouter(t, db, "manager")

	emitEvent(t, bus, events.OrderCreatedWeb, map[string]interface{}{"orderId": 1})
	emitEvent(t, bus, events.InventoryLowStock, map[string]interface{}{"itemName": "Flour"})

	w := performJSON(t, router, "GET", "/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Len(t, resp["data"].([]interface{}), 2)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	db := setupTestDB(t)
	router, bus := setupNotificationRouter(t, db, "manager")

	emitEvent(t, bus, events.OrderCreatedWeb, map[string]interface{}{"orderId": 1})

	w := performJSON(t, router, "GET", "/notifications/unread", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, 1.0, resp["data"].(map[string]interface{})["unread"])

	notifs := notificationsOfType(t, db, events.OrderCreatedWeb)
	assert.Len(t, notifs, 1)

	w = performJSON(t, router, "PATCH", fmt.Sprintf("/notifications/%d/read", notifs[0].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, "GET", "/notifications/unread", nil)
	resp = decodeBody(t, w)
	assert.Equal(t, 0.0, resp["data"].(map[string]interface{})["unread"])
}

func TestGetNotificationByIDScopedToRestaurant(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupNotificationRouter(t, db, "manager")

	foreign := models.Notification{
		RestaurantID: 2,
		Type:         events.SystemWarning,
		Severity:     "warning",
		Title:        "t",
		Message:      "m",
		Metadata:     "{}",
	}
	assert.NoError(t, db.Create(&foreign).Error)

	w := performJSON(t, router, "GET", fmt.Sprintf("/notifications/%d", foreign.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
