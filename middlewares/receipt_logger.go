package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/restrohq/restro-app/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Receipt request started: %s %s", c.Request.Method, c.Request.URL.Path)

		c.Next()

		if c.Writer.Status() < 400 {
			utils.InfoLogger.Printf("Receipt request finished: %s %s (%d)", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
		} else {
			utils.ErrorLogger.Printf("Receipt request failed: %s %s (%d)", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
		}
	}
}
