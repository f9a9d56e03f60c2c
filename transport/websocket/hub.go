package websocket

import (
	"log/slog"
	"sync"
)

// Hub tracks every live connection and fans game events out to them.
// Delivery never blocks: a connection whose buffer is full misses the event.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	connections map[string]*Connection
	stopped     bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		connections: make(map[string]*Connection),
	}
}

func (that *Hub) register(conn *Connection) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stopped {
		conn.closeSend()
		return false
	}

	that.connections[conn.ID] = conn

	return true
}

func (that *Hub) unregister(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	conn, ok := that.connections[id]
	if !ok {
		return
	}

	delete(that.connections, id)
	conn.closeSend()
}

// Send delivers an event to one participant. Unknown ids are ignored.
func (that *Hub) Send(participantID, action string, payload any) {
	log := that.logger.With("method", "Send", "participantID", participantID, "action", action)

	data, err := encodeMessage(action, payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	conn, ok := that.connections[participantID]
	if !ok {
		log.Debug("connection not found")
		return
	}

	if !conn.enqueue(data) {
		log.Warn("send buffer is full, message dropped")
	}
}

// Broadcast delivers an event to every connected client.
func (that *Hub) Broadcast(action string, payload any) {
	log := that.logger.With("method", "Broadcast", "action", action)

	data, err := encodeMessage(action, payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for id, conn := range that.connections {
		if !conn.enqueue(data) {
			log.Warn("send buffer is full, message dropped", "participantID", id)
		}
	}
}

func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}

// Stop closes every connection and rejects new ones.
func (that *Hub) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stopped {
		return
	}

	for id, conn := range that.connections {
		conn.closeSend()
		delete(that.connections, id)
	}

	that.stopped = true

	that.logger.Info("hub stopped")
}
