package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/restrohq/restro-app/notifications"
	"github.com/restrohq/restro-app/utils"
)

// Frame event names pushed over the socket.
const (
	EventNotification = "notification"
	EventOrderUpdate  = "order_update"
	EventStaffUpdate  = "staff_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	restaurantID uint
	userID       uint
	role         string
}

// Hub holds every live connection, keyed by restaurant so broadcasts stay
// tenant-scoped.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]client),
	}
}

// Register adds a connection for a restaurant with the caller's identity.
func (h *Hub) Register(conn *websocket.Conn, restaurantID, userID uint, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = client{restaurantID: restaurantID, userID: userID, role: role}
}

// Unregister drops a connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// EmitToRestaurant pushes a persisted notification to every live client of
// the owning restaurant. Implements notifications.Dispatcher.
func (h *Hub) EmitToRestaurant(restaurantID uint, payload notifications.DispatchPayload) {
	h.broadcast(restaurantID, Message{
		Event: EventNotification,
		Data:  payload,
	})
}

// BroadcastOrderUpdate pushes an order change to the restaurant's clients.
func (h *Hub) BroadcastOrderUpdate(restaurantID uint, data interface{}) {
	h.broadcast(restaurantID, Message{
		Event: EventOrderUpdate,
		Data:  data,
	})
}

// BroadcastStaffUpdate pushes a time-clock change to the restaurant's clients.
func (h *Hub) BroadcastStaffUpdate(restaurantID uint, data interface{}) {
	h.broadcast(restaurantID, Message{
		Event: EventStaffUpdate,
		Data:  data,
	})
}

// ClientCount reports the live connections for one restaurant.
func (h *Hub) ClientCount(restaurantID uint) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	n := 0
	for _, cl := range h.clients {
		if cl.restaurantID == restaurantID {
			n++
		}
	}
	return n
}

func (h *Hub) broadcast(restaurantID uint, msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range h.clients {
		if cl.restaurantID != restaurantID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to client (role %s): %v", cl.role, err)
			continue
		}
	}
}
