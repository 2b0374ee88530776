package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitRunsHandlersInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.On(OrderStatusChanged, func(ctx context.Context, event DomainEvent) error {
		calls = append(calls, "first")
		return nil
	})
	bus.On(OrderStatusChanged, func(ctx context.Context, event DomainEvent) error {
		calls = append(calls, "second")
		return nil
	})
	bus.On(OrderStatusChanged, func(ctx context.Context, event DomainEvent) error {
		calls = append(calls, "third")
		return nil
	})

	err := bus.Emit(context.Background(), OrderStatusChanged, DomainEvent{
		RestaurantID: 1,
		Type:         OrderStatusChanged,
		OccurredAt:   time.Now(),
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestEmitWithNoHandlersIsNoOp(t *testing.T) {
	bus := NewBus()
	err := bus.Emit(context.Background(), "some.unknown_type", DomainEvent{RestaurantID: 1})
	assert.NoError(t, err)
}

// A failing handler stops the remaining handlers for the same emit call and
// the error reaches the caller. Handlers are not isolated from each other.
func TestHandlerErrorAbortsChain(t *testing.T) {
	bus := NewBus()
	boom := errors.New("handler failed")
	secondRan := false

	bus.On(InventoryLowStock, func(ctx context.Context, event DomainEvent) error {
		return boom
	})
	bus.On(InventoryLowStock, func(ctx context.Context, event DomainEvent) error {
		secondRan = true
		return nil
	})

	err := bus.Emit(context.Background(), InventoryLowStock, DomainEvent{RestaurantID: 1})
	assert.ErrorIs(t, err, boom)
	assert.False(t, secondRan, "second handler must not run after the first one fails")
}

func TestHandlersOnlyReceiveTheirEventType(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.On(TaskCreated, func(ctx context.Context, event DomainEvent) error {
		got = append(got, event.Type)
		return nil
	})

	assert.NoError(t, bus.Emit(context.Background(), TaskCompleted, DomainEvent{Type: TaskCompleted}))
	assert.NoError(t, bus.Emit(context.Background(), TaskCreated, DomainEvent{Type: TaskCreated}))
	assert.Equal(t, []string{TaskCreated}, got)
}

func TestEmitPassesEventThrough(t *testing.T) {
	bus := NewBus()
	var received DomainEvent

	bus.On(StaffClockIn, func(ctx context.Context, event DomainEvent) error {
		received = event
		return nil
	})

	sent := DomainEvent{
		RestaurantID: 7,
		Type:         StaffClockIn,
		Actor:        "user:3",
		Payload:      map[string]interface{}{"staffName": "Dana"},
		OccurredAt:   time.Now(),
	}
	assert.NoError(t, bus.Emit(context.Background(), StaffClockIn, sent))
	assert.Equal(t, sent.RestaurantID, received.RestaurantID)
	assert.Equal(t, sent.Actor, received.Actor)
	assert.Equal(t, "Dana", received.Payload["staffName"])
}
