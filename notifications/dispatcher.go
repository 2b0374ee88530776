package notifications

import "github.com/restrohq/restro-app/models"

// DispatchPayload is the frame pushed to a restaurant's live connections
// when a notification has been persisted.
type DispatchPayload struct {
	RestaurantID uint                `json:"restaurant_id"`
	Notification models.Notification `json:"notification"`
}

// Dispatcher fans a persisted notification out to every connected client of
// the owning restaurant. Implemented by the realtime hub.
type Dispatcher interface {
	EmitToRestaurant(restaurantID uint, payload DispatchPayload)
}
