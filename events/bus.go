package events

import (
	"context"
	"sync"
	"time"
)

// Domain event types emitted by the route handlers and background monitors.
const (
	StaffClockIn    = "staff.clock_in"
	StaffClockOut   = "staff.clock_out"
	StaffBreakStart = "staff.break_start"
	StaffBreakEnd   = "staff.break_end"
	StaffOpenShift  = "staff.open_shift"

	OrderCreatedWeb    = "order.created_web"
	OrderCreatedVapi   = "order.created_vapi"
	OrderStatusChanged = "order.status_changed"

	ReceiptUploaded = "receipt.uploaded"
	ReceiptApplied  = "receipt.applied"

	InventoryLowStock = "inventory.low_stock"

	TaskCreated   = "task.created"
	TaskCompleted = "task.completed"

	SystemError   = "system.error"
	SystemWarning = "system.warning"
)

// DomainEvent describes a fact that happened elsewhere in the system.
// Events are not persisted; only the notifications derived from them are.
type DomainEvent struct {
	RestaurantID uint                   `json:"restaurant_id"`
	Type         string                 `json:"type"`
	Actor        string                 `json:"actor"`
	Payload      map[string]interface{} `json:"payload"`
	OccurredAt   time.Time              `json:"occurred_at"`
}

// HandlerFunc handles a single domain event.
type HandlerFunc func(ctx context.Context, event DomainEvent) error

// Bus is an in-process publish/subscribe registry mapping an event type to
// its handlers. Handlers run sequentially in registration order; the first
// handler error aborts the remaining chain for that Emit call and is returned
// to the emitter. There is no isolation between handlers, no persistence and
// no retry: delivery is best-effort, at most once.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
	}
}

// On registers a handler for an event type. Multiple handlers per type are
// allowed; Emit invokes them in registration order.
func (b *Bus) On(eventType string, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Emit invokes every handler registered for the event type, awaiting each
// before calling the next. A handler error stops the remaining handlers for
// this call and propagates to the caller. Emitting a type with no handlers
// is a no-op.
func (b *Bus) Emit(ctx context.Context, eventType string, event DomainEvent) error {
	b.mu.RLock()
	chain := b.handlers[eventType]
	b.mu.RUnlock()

	for _, h := range chain {
		if err := h(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
