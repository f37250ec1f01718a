package api

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// connWithMutex wraps a WebSocket connection with its own mutex for thread-safe writes.
type connWithMutex struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// WSConnectionManager manages preview WebSocket connections for broadcasting.
type WSConnectionManager struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]*connWithMutex
}

// NewWSConnectionManager creates a new WebSocket connection manager.
func NewWSConnectionManager() *WSConnectionManager {
	return &WSConnectionManager{
		connections: make(map[*websocket.Conn]*connWithMutex),
	}
}

// Add registers a connection and returns the ID assigned to it.
func (m *WSConnectionManager) Add(conn *websocket.Conn) string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn] = &connWithMutex{
		id:   id,
		conn: conn,
	}
	return id
}

// Remove removes a connection from the manager.
func (m *WSConnectionManager) Remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, conn)
}

// Len returns the number of registered connections.
func (m *WSConnectionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Broadcast sends a message to all connected clients and returns how many
// received it. Connections that fail the write are dropped.
func (m *WSConnectionManager) Broadcast(message any) int {
	m.mu.RLock()
	conns := make([]*connWithMutex, 0, len(m.connections))
	for _, cwm := range m.connections {
		conns = append(conns, cwm)
	}
	m.mu.RUnlock()

	delivered := 0
	for _, cwm := range conns {
		cwm.mu.Lock()
		err := cwm.conn.WriteJSON(message)
		cwm.mu.Unlock()

		if err != nil {
			m.Remove(cwm.conn)
			continue
		}
		delivered++
	}
	return delivered
}

// WriteJSON safely writes JSON to a specific connection using its mutex.
func (m *WSConnectionManager) WriteJSON(conn *websocket.Conn, message any) error {
	m.mu.RLock()
	cwm, exists := m.connections[conn]
	m.mu.RUnlock()

	if !exists {
		return conn.WriteJSON(message)
	}

	cwm.mu.Lock()
	defer cwm.mu.Unlock()
	return cwm.conn.WriteJSON(message)
}
