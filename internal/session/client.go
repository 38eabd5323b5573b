package session

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tickdeck/go-tickdeck/pkg/logger"
)

const (
	writeWait      = 10 * time.Second    // time allowed to write a message to the peer
	pongWait       = 60 * time.Second    // time allowed to read the next pong message from the peer
	pingPeriod     = (pongWait * 9) / 10 // send pings to peer with this period. Must be less than pongWait
	maxMessageSize = 512                 // maximum message size allowed from peer
	sendBuffer     = 32                  // outbound queue; ticks arrive once per second per timer
)

type message struct {
	client  *client
	payload []byte
}

// client is the browser connection attached to a session
type client struct {
	server *sessionServer
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(conn *websocket.Conn, server *sessionServer) *client {
	return &client{
		server: server,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
}

func (c *client) ReadPump(wg *sync.WaitGroup) {
	// read message from client
	defer c.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	// tell outside resource pump started
	wg.Done()
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway) {
				logger.Log.Debug().Err(err).Msg("websocket unexpected close error")
			}
			break
		}
		c.server.process <- &message{
			c,
			msg,
		}
	}
}

func (c *client) WritePump(wg *sync.WaitGroup) {
	// write back to client
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	// tell outside resource pump started
	wg.Done()
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				_ = c.writeMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.writeMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}

func (c *client) writeMessage(msgType int, payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(msgType, payload)
}

func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	logger.Log.Debug().Caller().Msgf("closing client for session %s", c.server.id)
	c.closed = true
	c.server.leave <- c
	close(c.send)
	return c.conn.Close()
}
