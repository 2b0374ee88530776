package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/restrohq/restro-app/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type StreamController struct {
	Hub *realtime.Hub
}

func NewStreamController(hub *realtime.Hub) *StreamController {
	return &StreamController{Hub: hub}
}

// Handle upgrades the connection and registers it on the restaurant's
// channel until the client disconnects.
func (sc *StreamController) Handle(c *gin.Context) {
	restaurantID, exists := c.Get("restaurantID")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID := c.GetUint("userID")
	role := c.GetString("role")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sc.Hub.Register(ws, restaurantID.(uint), userID, role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	sc.Hub.Unregister(ws)
}
