package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matiasolis/impostor-party/internal/model"
)

const (
	// writeWait is the time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// pongWait is the time allowed to read the next pong from the peer
	pongWait = 60 * time.Second
	// pingPeriod is how often pings are sent; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize is the largest inbound frame accepted
	maxMessageSize = 4096
	// sendBufferSize is the per-client outbound queue depth
	sendBufferSize = 64
)

// Client is one websocket connection with its outbound queue
type Client struct {
	id     model.PlayerID
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	closeOnce sync.Once
}

// NewClient wraps an upgraded connection
func NewClient(id model.PlayerID, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger.With(slog.String("player_id", string(id))),
	}
}

// ID returns the connection's player identity
func (c *Client) ID() model.PlayerID {
	return c.id
}

// enqueue queues a message for delivery, reporting false if the buffer is
// full or the client is closed
func (c *Client) enqueue(msg []byte) bool {
	defer func() {
		// send may race with close; a dropped message to a dying client is fine
		_ = recover()
	}()
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close shuts down the outbound queue, which terminates the write pump
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump reads inbound frames and dispatches them to the session until the
// connection drops, then runs disconnect cleanup. Runs on the connection's
// serving goroutine.
func (c *Client) ReadPump(session *Session) {
	defer func() {
		session.HandleDisconnect(context.Background())
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.Any("error", err))
			}
			return
		}
		session.HandleMessage(context.Background(), msg)
	}
}

// WritePump drains the outbound queue to the connection and keeps the
// connection alive with pings. Runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
