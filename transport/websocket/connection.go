package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096

	sendBufferSize = 64
)

// Connection is one client socket. Only writePump writes to conn.
type Connection struct {
	ID string

	logger *slog.Logger
	conn   *websocket.Conn

	send      chan []byte
	closeOnce sync.Once
}

func newConnection(logger *slog.Logger, id string, conn *websocket.Conn) *Connection {
	return &Connection{
		ID:     id,
		logger: logger.With("connectionID", id),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// enqueue must be called with the hub lock held so it never races closeSend.
func (that *Connection) enqueue(data []byte) bool {
	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *Connection) closeSend() {
	that.closeOnce.Do(func() {
		close(that.send)
	})
}

func (that *Connection) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("failed to set write deadline", "error", err)
			}

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("failed to set write deadline", "error", err)
			}

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				return
			}
		}
	}
}
