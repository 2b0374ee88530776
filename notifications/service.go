package notifications

import (
	"context"
	"time"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

// HandledEventTypes is the fixed list of domain event types the service
// drafts in-app notifications for.
var HandledEventTypes = []string{
	events.StaffClockIn,
	events.StaffClockOut,
	events.StaffBreakStart,
	events.StaffBreakEnd,
	events.StaffOpenShift,
	events.OrderCreatedWeb,
	events.OrderCreatedVapi,
	events.OrderStatusChanged,
	events.ReceiptUploaded,
	events.ReceiptApplied,
	events.InventoryLowStock,
	events.TaskCreated,
	events.TaskCompleted,
	events.SystemError,
	events.SystemWarning,
}

// OrderNotifier sends outbound SMS/email for order lifecycle events. The
// pipeline treats it as an opaque side-effecting collaborator keyed by order
// and restaurant.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, restaurantID uint, orderID string) error
	OrderStatusChanged(ctx context.Context, restaurantID uint, orderID, newStatus string) error
}

// Service bridges the event bus to storage and real-time delivery. One
// handler per handled type drafts, persists and dispatches in-app
// notifications; separate handlers on the order events trigger the external
// SMS/email collaborator. The extra handlers are registered after the in-app
// one, so an in-app failure stops the outbound message for the same emit
// (bus handlers are not isolated from each other).
type Service struct {
	store      *Store
	dispatcher Dispatcher
	orders     OrderNotifier
}

func NewService(bus *events.Bus, store *Store, dispatcher Dispatcher, orders OrderNotifier) *Service {
	s := &Service{
		store:      store,
		dispatcher: dispatcher,
		orders:     orders,
	}

	for _, eventType := range HandledEventTypes {
		bus.On(eventType, s.handleEvent)
	}

	bus.On(events.OrderCreatedWeb, s.handleOrderCreatedMessaging)
	bus.On(events.OrderCreatedVapi, s.handleOrderCreatedMessaging)
	bus.On(events.OrderStatusChanged, s.handleOrderStatusMessaging)

	return s
}

// handleEvent drafts, persists and fans out the notifications for one event.
func (s *Service) handleEvent(ctx context.Context, event events.DomainEvent) error {
	drafts := BuildDrafts(event)
	for _, draft := range drafts {
		created, err := s.store.CreateNotification(event.RestaurantID, event.Type, draft)
		if err != nil {
			return err
		}

		notif := models.Notification{
			ID:           created.ID,
			RestaurantID: event.RestaurantID,
			Type:         event.Type,
			Severity:     draft.Severity,
			Title:        draft.Title,
			Message:      draft.Message,
			Metadata:     serializeMetadata(draft.Metadata),
		}
		if ts, err := time.Parse(time.RFC3339, created.CreatedAt); err == nil {
			notif.CreatedAt = ts
		}

		s.dispatcher.EmitToRestaurant(event.RestaurantID, DispatchPayload{
			RestaurantID: event.RestaurantID,
			Notification: notif,
		})
		utils.InfoLogger.Printf("Notification %d (%s) dispatched for restaurant %d",
			created.ID, event.Type, event.RestaurantID)
	}
	return nil
}

func (s *Service) handleOrderCreatedMessaging(ctx context.Context, event events.DomainEvent) error {
	if s.orders == nil {
		return nil
	}
	orderID := payloadString(event.Payload, "orderId", "")
	if orderID == "" {
		return nil
	}
	return s.orders.OrderCreated(ctx, event.RestaurantID, orderID)
}

func (s *Service) handleOrderStatusMessaging(ctx context.Context, event events.DomainEvent) error {
	if s.orders == nil {
		return nil
	}
	orderID := payloadString(event.Payload, "orderId", "")
	if orderID == "" {
		return nil
	}
	status := payloadString(event.Payload, "newStatus", "")
	return s.orders.OrderStatusChanged(ctx, event.RestaurantID, orderID, status)
}
