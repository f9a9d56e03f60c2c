package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

var (
	ErrMissingAction = errors.New("message action is missing")
	ErrUnknownAction = errors.New("unknown message action")
)

type gameManager interface {
	Join(ctx context.Context, participantID string)
	PlaceMark(ctx context.Context, participantID string, cell int)
	Leave(ctx context.Context, participantID string)
}

type Server struct {
	logger      *slog.Logger
	hub         *Hub
	gameManager gameManager

	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, conn *Connection, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, gameManager gameManager) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		hub:         hub,
		gameManager: gameManager,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]func(context.Context, *Connection, *Message) error),
	}

	server.handlers[entity.ActionPlacePiece] = server.handlePlacePiece

	return server
}

// Handler - returns the /ws endpoint. ctx bounds every game operation started from it.
func (that *Server) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it until it closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(that.logger, uuid.NewString(), wsConn)
	log = log.With("connectionID", conn.ID)

	if !that.hub.register(conn) {
		log.Warn("hub is stopped, connection rejected")
		_ = wsConn.Close()
		return
	}

	go conn.writePump()

	log.Info("WebSocket connection established")

	that.gameManager.Join(ctx, conn.ID)

	that.handleMessages(ctx, conn)

	// unregister first so the leaver is not notified about its own departure
	that.hub.unregister(conn.ID)
	that.gameManager.Leave(ctx, conn.ID)

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until the socket fails.
func (that *Server) handleMessages(ctx context.Context, conn *Connection) {
	log := that.logger.With("method", "handleMessages", "connectionID", conn.ID)

	conn.conn.SetReadLimit(maxMessageSize)

	if err := conn.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error("failed to set read deadline", "error", err)
	}

	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		if err = that.processMessage(ctx, conn, data); err != nil {
			log.Error("error processing message", "error", err)
		}
	}
}

func (that *Server) processMessage(ctx context.Context, conn *Connection, data []byte) error {
	message, err := decodeMessage(data)
	if err != nil {
		return err
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, message.Action)
	}

	return handler(ctx, conn, message)
}
