package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/realtime"
	"github.com/restrohq/restro-app/utils"
)

type OrderController struct {
	DB  *gorm.DB
	Bus *events.Bus
	Hub *realtime.Hub
}

func NewOrderController(db *gorm.DB, bus *events.Bus, hub *realtime.Hub) *OrderController {
	return &OrderController{DB: db, Bus: bus, Hub: hub}
}

type orderItemReq struct {
	MenuID   uint   `json:"menu_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Notes    string `json:"notes"`
}

type createOrderReq struct {
	TableID       *uint          `json:"table_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	CustomerEmail string         `json:"customer_email"`
	Notes         string         `json:"notes"`
	Items         []orderItemReq `json:"items" binding:"required,min=1"`
}

// GetAllOrders lists the restaurant's orders with items.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	query := oc.DB.Preload("OrderItems").Where("restaurant_id = ?", restaurantID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder creates a web order and emits order.created_web.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body createOrderReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.createOrder(restaurantID, models.OrderSourceWeb, body)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// The order row is already committed; an emit failure surfaces as a
	// request failure regardless.
	if err := oc.emitOrderCreated(c, events.OrderCreatedWeb, order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// CreateVoiceOrder is the webhook the voice assistant posts completed orders
// to. It authenticates via a shared secret and emits order.created_vapi.
func (oc *OrderController) CreateVoiceOrder(c *gin.Context) {
	secret := os.Getenv("VAPI_WEBHOOK_SECRET")
	if secret == "" || c.GetHeader("X-Vapi-Secret") != secret {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid webhook secret"))
		return
	}

	var body struct {
		RestaurantID uint `json:"restaurant_id" binding:"required"`
		createOrderReq
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.createOrder(body.RestaurantID, models.OrderSourceVapi, body.createOrderReq)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.emitOrderCreated(c, events.OrderCreatedVapi, order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (oc *OrderController) createOrder(restaurantID uint, source string, body createOrderReq) (*models.Order, error) {
	var customerID *uint
	if body.CustomerName != "" || body.CustomerPhone != "" || body.CustomerEmail != "" {
		sessionKey := uuid.NewString()
		customer := models.Customer{
			RestaurantID: restaurantID,
			TableID:      body.TableID,
			Name:         body.CustomerName,
			Phone:        body.CustomerPhone,
			Email:        body.CustomerEmail,
			SessionKey:   &sessionKey,
			Status:       "active",
		}
		if err := oc.DB.Create(&customer).Error; err != nil {
			return nil, err
		}
		customerID = &customer.ID
	}

	order := models.Order{
		RestaurantID: restaurantID,
		CustomerID:   customerID,
		TableID:      body.TableID,
		Source:       source,
		Status:       models.OrderStatusReceived,
		Notes:        body.Notes,
	}
	if err := oc.DB.Create(&order).Error; err != nil {
		return nil, err
	}

	var total float64
	for _, item := range body.Items {
		var menu models.Menu
		if err := oc.DB.Where("restaurant_id = ?", restaurantID).First(&menu, item.MenuID).Error; err != nil {
			// Skip unknown menu ids rather than failing the whole order.
			continue
		}
		total += float64(item.Quantity) * menu.Price

		orderItem := models.OrderItem{
			OrderID:  order.ID,
			MenuID:   menu.ID,
			Quantity: item.Quantity,
			Price:    menu.Price,
			Notes:    item.Notes,
		}
		if err := oc.DB.Create(&orderItem).Error; err != nil {
			return nil, err
		}
	}

	order.TotalAmount = total
	if err := oc.DB.Save(&order).Error; err != nil {
		return nil, err
	}

	if oc.Hub != nil {
		oc.Hub.BroadcastOrderUpdate(restaurantID, order)
	}
	return &order, nil
}

func (oc *OrderController) emitOrderCreated(c *gin.Context, eventType string, order *models.Order) error {
	return oc.Bus.Emit(c.Request.Context(), eventType, events.DomainEvent{
		RestaurantID: order.RestaurantID,
		Type:         eventType,
		Actor:        actorFromContext(c),
		Payload: map[string]interface{}{
			"orderId": order.ID,
			"total":   order.TotalAmount,
			"source":  order.Source,
		},
		OccurredAt: time.Now(),
	})
}

// GetOrderByID returns one order with items.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("restaurant_id = ?", restaurantID).
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus moves an order through its lifecycle and emits
// order.status_changed.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Where("restaurant_id = ?", restaurantID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !models.ValidStatusTransition(order.Status, body.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot move order from %s to %s", order.Status, body.Status))
		return
	}

	previous := order.Status
	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if oc.Hub != nil {
		oc.Hub.BroadcastOrderUpdate(restaurantID, order)
	}

	err := oc.Bus.Emit(c.Request.Context(), events.OrderStatusChanged, events.DomainEvent{
		RestaurantID: restaurantID,
		Type:         events.OrderStatusChanged,
		Actor:        actorFromContext(c),
		Payload: map[string]interface{}{
			"orderId":        order.ID,
			"previousStatus": previous,
			"newStatus":      order.Status,
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		// The status update already committed; the emit failure still fails
		// the request.
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder removes an order and its items.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Where("restaurant_id = ?", restaurantID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oc.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := oc.DB.Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

func actorFromContext(c *gin.Context) string {
	if userID, exists := c.Get("userID"); exists {
		return fmt.Sprintf("user:%v", userID)
	}
	return "system"
}
