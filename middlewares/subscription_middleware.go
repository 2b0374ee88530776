package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

// SubscriptionGuard blocks mutating requests for restaurants whose
// subscription has lapsed. Reads stay available so staff can still see data.
func SubscriptionGuard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		// Renewal must stay reachable for lapsed accounts.
		if strings.HasPrefix(c.Request.URL.Path, "/api/billing") {
			c.Next()
			return
		}

		restaurantID, exists := c.Get("restaurantID")
		if !exists {
			c.Next()
			return
		}

		var sub models.Subscription
		if err := db.Where("restaurant_id = ?", restaurantID).First(&sub).Error; err != nil {
			// No subscription row yet: treat as trial, allow.
			c.Next()
			return
		}

		if sub.Status == models.SubscriptionStatusCanceled || sub.Expired(time.Now()) {
			utils.RespondError(c, http.StatusPaymentRequired, errors.New("subscription inactive"))
			c.Abort()
			return
		}

		c.Next()
	}
}
