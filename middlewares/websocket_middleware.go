package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/restrohq/restro-app/utils"
)

// WebSocketAuthMiddleware authenticates the socket handshake via a token
// query parameter, since browsers cannot set headers on WebSocket upgrades.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("restaurantID", claims.RestaurantID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
