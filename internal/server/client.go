package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client is one websocket connection. Its read pump processes the
// connection's events strictly in arrival order; events of different
// connections interleave freely.
type Client struct {
	id         string
	conn       *websocket.Conn
	chatServer *ChatServer
	log        *log.Logger
	send       chan *ServerMessage
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewClient(id string, conn *websocket.Conn, cs *ChatServer, l *log.Logger) *Client {
	return &Client{
		id:         id,
		conn:       conn,
		chatServer: cs,
		log:        l,
		send:       make(chan *ServerMessage, 256),
		stop:       make(chan struct{}),
	}
}

func (c *Client) Write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			bytes, err := json.Marshal(msg)
			if err != nil {
				c.log.Println("failed to serialize message:", err)
				continue
			}

			if !c.writeFrame(websocket.TextMessage, bytes) {
				return
			}
		case <-c.stop:
			return
		case <-ticker.C:
			if !c.writeFrame(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Client) Read() {
	defer func() {
		c.conn.Close()
		c.cleanup()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Printf("ws: read: %v", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Println("error parsing message:", err)
			c.queueMessage(errInvalidMessage())
			continue
		}

		c.dispatch(&msg)
	}
}

func (c *Client) dispatch(msg *ClientMessage) {
	switch {
	case msg.Join != nil:
		c.chatServer.handleJoin(c, msg.Join)
	case msg.Room != nil:
		c.chatServer.handleRoomMessage(c, msg.Room)
	case msg.Direct != nil:
		c.chatServer.handleSend(c, msg.Direct)
	default:
		c.queueMessage(errInvalidMessage())
	}
}

// queueMessage enqueues without blocking. A full channel means the
// connection is too slow or already closing; its copy is dropped.
func (c *Client) queueMessage(msg *ServerMessage) bool {
	select {
	case c.send <- msg:
	default:
		c.log.Printf("send channel full for connection %s", c.id)
		return false
	}

	return true
}

func (c *Client) writeFrame(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Printf("write message: %s", err)
		}
		return false
	}

	return true
}

func (c *Client) stopClient() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Client) cleanup() {
	c.chatServer.DeregisterClient(c)
	c.stopClient()
}
