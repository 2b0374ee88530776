package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/notifications"
	"github.com/restrohq/restro-app/utils"
)

type NotificationController struct {
	DB    *gorm.DB
	Store *notifications.Store
}

func NewNotificationController(db *gorm.DB, store *notifications.Store) *NotificationController {
	return &NotificationController{DB: db, Store: store}
}

// GetNotifications lists the notifications visible to the caller:
// restaurant-wide, role-scoped for their role, and user-scoped for them.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	userID := c.GetUint("userID")
	role := c.GetString("role")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifs, err := nc.Store.ListForUser(restaurantID, userID, role, limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// GetNotificationByID returns one notification scoped to the restaurant.
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("notif_id"))

	var notif models.Notification
	if err := nc.DB.Where("restaurant_id = ?", restaurantID).First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// MarkRead stamps the caller's recipient rows for one notification.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	userID := c.GetUint("userID")
	role := c.GetString("role")
	id, _ := strconv.Atoi(c.Param("notif_id"))

	if err := nc.Store.MarkRead(uint(id), restaurantID, userID, role); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked read", gin.H{"notif_id": id})
}

// GetUnreadCount returns how many of the caller's notifications are unread.
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	userID := c.GetUint("userID")
	role := c.GetString("role")

	var count int64
	err := nc.DB.Model(&models.NotificationRecipient{}).
		Where("restaurant_id = ? AND read_at IS NULL", restaurantID).
		Where("kind = ? OR (kind = ? AND role = ?) OR (kind = ? AND user_id = ?)",
			notifications.RecipientRestaurant,
			notifications.RecipientRole, role,
			notifications.RecipientUser, userID).
		Count(&count).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"unread": count})
}
