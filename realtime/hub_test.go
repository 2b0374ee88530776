package realtime

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestClientCountScopedToRestaurant(t *testing.T) {
	hub := NewHub()

	c1 := &websocket.Conn{}
	c2 := &websocket.Conn{}
	c3 := &websocket.Conn{}
	hub.Register(c1, 1, 10, "owner")
	hub.Register(c2, 1, 11, "staff")
	hub.Register(c3, 2, 12, "owner")

	assert.Equal(t, 2, hub.ClientCount(1))
	assert.Equal(t, 1, hub.ClientCount(2))
	assert.Equal(t, 0, hub.ClientCount(3))
}

func TestRegisterReplacesExistingConn(t *testing.T) {
	hub := NewHub()

	conn := &websocket.Conn{}
	hub.Register(conn, 1, 10, "owner")
	hub.Register(conn, 1, 10, "owner")

	assert.Equal(t, 1, hub.ClientCount(1))
}
