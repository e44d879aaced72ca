package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Upgrader is the shared websocket upgrader for stream endpoints
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the CORS layer in front of us
		return true
	},
}

const (
	pongWait = 60 * time.Second
)

// Client pumps feed events for one open quest stream down a websocket
// connection. Both the message and read-receipt subscriptions are torn
// down when the connection goes away.
type Client struct {
	conn          *websocket.Conn
	subscriptions []*Subscription
	send          chan Event
	writeTimeout  time.Duration
	pingInterval  time.Duration
	logger        *zap.Logger
	done          chan struct{}
}

// NewClient wires a websocket connection to the given subscriptions
func NewClient(conn *websocket.Conn, subs []*Subscription, writeTimeout, pingInterval time.Duration, logger *zap.Logger) *Client {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		conn:          conn,
		subscriptions: subs,
		send:          make(chan Event, 64),
		writeTimeout:  writeTimeout,
		pingInterval:  pingInterval,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

// Run serves the connection until the peer disconnects. It blocks.
func (c *Client) Run() {
	for _, sub := range c.subscriptions {
		go c.forward(sub)
	}
	go c.writePump()
	c.readPump()
}

// forward drains one subscription into the shared send channel
func (c *Client) forward(sub *Subscription) {
	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			select {
			case c.send <- event:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) readPump() {
	defer c.teardown()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The stream is server-to-client only; reads exist to detect close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				c.logger.Error("failed to encode feed event", zap.Error(err))
				_ = w.Close()
				continue
			}
			_, _ = w.Write(data)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) teardown() {
	close(c.done)
	for _, sub := range c.subscriptions {
		sub.Close()
	}
	c.conn.Close()
}
